package cache

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Guides   bool    `json:"guides,omitempty"`
	Labels   bool    `json:"labels,omitempty"`
	Ghosts   bool    `json:"ghosts,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Engine   string  `json:"engine,omitempty"` // "sink" or "nodelink"
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered artifact of a frame.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string

	// TranscriptKey identifies the replay result of a script.
	TranscriptKey(scriptHash string) string
}

// DefaultKeyer builds keys of the form kind:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the frame hash together with opts.
func (DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", frameHash, opts)
}

// TranscriptKey hashes the script hash.
func (DefaultKeyer) TranscriptKey(scriptHash string) string {
	return hashKey("transcript", scriptHash)
}
