package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tools can share
// one backend without colliding, for example the CLI and a running server
// pointed at the same Redis.
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "fabmenu:serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(frameHash, opts)
}

// TranscriptKey generates a prefixed transcript key.
func (k *ScopedKeyer) TranscriptKey(scriptHash string) string {
	return k.prefix + k.inner.TranscriptKey(scriptHash)
}
