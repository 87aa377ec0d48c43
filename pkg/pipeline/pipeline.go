// Package pipeline provides the frame → artifact pipeline shared by the CLI
// and the HTTP server.
//
// A pipeline run takes a [menu.Frame] (either a live menu's current frame or
// a static frame built from a [menu.Config]) and renders it to one or more
// output formats. Every artifact is cached under a key derived from the
// frame's content hash and the render options that affect its bytes, so
// repeated renders of an unchanged frame are served from the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.RenderConfig(ctx, cfg, pipeline.Options{
//	    Total:   6,
//	    Open:    true,
//	    Formats: []string{"svg", "json"},
//	    Guides:  true,
//	})
//	svg := result.Artifacts["svg"]
//
// Scripts are replayed with [Runner.Simulate], which caches the transcript
// under the script's content hash.
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fabmenu/pkg/cache"
	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/menu"
	"github.com/matzehuels/fabmenu/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTotal is the item count of a static frame.
	DefaultTotal = 5

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultEngine is the default render engine.
	DefaultEngine = EngineSink
)

// Render engines.
const (
	// EngineSink draws frames directly as SVG.
	EngineSink = "sink"

	// EngineNodelink lays frames out as pinned Graphviz graphs.
	EngineNodelink = "nodelink"
)

// ValidEngines is the set of supported render engines.
var ValidEngines = map[string]bool{
	EngineSink:     true,
	EngineNodelink: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. It supports JSON serialization for
// API requests.
type Options struct {
	// Frame options, used by RenderConfig only.
	Total int  `json:"total,omitempty"`
	Open  bool `json:"open,omitempty"`

	// Render options
	Engine   string   `json:"engine,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Guides   bool     `json:"guides,omitempty"`
	Labels   bool     `json:"labels,omitempty"`
	Ghosts   bool     `json:"ghosts,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Label    string   `json:"label,omitempty"`

	// Refresh bypasses cached artifacts. Fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Frame is the rendered frame.
	Frame menu.Frame

	// FrameHash is the content hash of the frame.
	FrameHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// RenderTime is the wall time spent rendering, cache lookups included.
	RenderTime time.Duration

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !render.ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, dot, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that a render engine is valid.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidArgument,
			"invalid engine: %q (must be one of: sink, nodelink)", engine)
	}
	return nil
}

// ParseFormats splits a comma-separated format list. An empty string
// selects SVG.
func ParseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Total == 0 {
		o.Total = DefaultTotal
	}
	if err := errors.ValidateTotal(o.Total); err != nil {
		return err
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := errors.ValidatePositive("scale", o.Scale); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// IsNodelink reports whether the Graphviz engine renders the images.
func (o *Options) IsNodelink() bool {
	return o.Engine == EngineNodelink
}

// ArtifactKeyOpts returns cache key options for one format.
// Only the options that change that format's bytes are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case render.FormatJSON:
		return k
	case render.FormatDOT:
		k.Detailed = o.Detailed
		k.Ghosts = o.Ghosts
		return k
	}
	k.Engine = o.Engine
	if o.IsNodelink() {
		k.Detailed = o.Detailed
		k.Ghosts = o.Ghosts
	} else {
		k.Guides = o.Guides
		k.Labels = o.Labels
		k.Ghosts = o.Ghosts
	}
	if format == render.FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
