package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fabmenu/pkg/cache"
	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/menu"
	"github.com/matzehuels/fabmenu/pkg/observability"
	"github.com/matzehuels/fabmenu/pkg/script"
)

// SimulatedMenuID is the instance ID of menus replayed by Simulate. A
// fixed ID keeps transcripts of the same script byte-identical.
const SimulatedMenuID = "simulated"

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// RenderConfig builds a static frame from cfg with opts.Total items and
// opts.Open, then renders it.
func (r *Runner) RenderConfig(ctx context.Context, cfg menu.Config, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	f, err := menu.StaticFrame(cfg, opts.Total, opts.Open)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, f, opts)
}

// Render generates artifacts for f with caching. Each format is looked up
// and stored separately.
func (r *Runner) Render(ctx context.Context, f menu.Frame, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	frameHash, err := cache.HashJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash frame")
	}

	start := time.Now()
	result := &Result{
		Frame:     f,
		FrameHash: frameHash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheHit:  true,
	}
	hooks := observability.Render()

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				result.Artifacts[format] = data
				continue
			}
		}
		result.CacheHit = false

		hooks.OnRenderStart(ctx, format)
		formatStart := time.Now()
		data, err := RenderFormat(ctx, f, format, opts)
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(formatStart), err)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache set failed", "format", format, "error", err)
		}
	}
	result.RenderTime = time.Since(start)

	opts.Logger.Debug("rendered frame",
		"menu", f.ID,
		"formats", opts.Formats,
		"cached", result.CacheHit,
		"duration", result.RenderTime)
	return result, nil
}

// Simulate replays s with caching and reports whether the transcript came
// from the cache.
func (r *Runner) Simulate(ctx context.Context, s *script.Script, refresh bool) (*script.Transcript, bool, error) {
	if err := s.Validate(); err != nil {
		return nil, false, err
	}
	scriptHash, err := cache.HashJSON(s)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash script")
	}
	key := r.Keyer.TranscriptKey(scriptHash)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var t script.Transcript
			if err := json.Unmarshal(data, &t); err == nil {
				return &t, true, nil
			}
		}
	}

	t, err := script.Run(ctx, s, script.WithLogger(r.Logger), script.WithMenuID(SimulatedMenuID))
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(t); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache set failed", "key", key, "error", err)
		}
	}
	r.Logger.Debug("simulated script",
		"name", s.Name,
		"events", len(s.Events),
		"ignored", t.Ignored)
	return t, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
