package menu

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/interaction"
	"github.com/matzehuels/fabmenu/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for library, CLI and server
// =============================================================================

const (
	// DefaultCorner is the anchor corner used when none is configured.
	DefaultCorner = layout.BottomRight

	// DefaultStrategy is the layout strategy used when none is configured.
	DefaultStrategy = layout.Petal

	// DefaultDragThresholdPx is the |Δx|+|Δy| a press must exceed to become a drag.
	DefaultDragThresholdPx = interaction.DefaultDragThreshold

	// DefaultBaseRadiusPx is the petal radius of layer 0.
	DefaultBaseRadiusPx = layout.DefaultBaseRadius

	// DefaultSpacingPx is the distance between vertical and grid slots.
	DefaultSpacingPx = layout.DefaultSpacing

	// DefaultItemRadiusPx is the hit radius of a child item.
	DefaultItemRadiusPx = 20.0

	// DefaultTriggerRadiusPx is the hit radius of the trigger.
	DefaultTriggerRadiusPx = 28.0

	// DefaultCloseOnSelect closes the menu after a child item is selected.
	DefaultCloseOnSelect = true
)

// Config is the construction-time configuration of a Menu.
// It decodes from TOML, YAML and JSON with the same field names.
type Config struct {
	Corner          layout.Corner   `json:"corner,omitempty" toml:"corner" yaml:"corner"`
	Strategy        layout.Strategy `json:"strategy,omitempty" toml:"strategy" yaml:"strategy"`
	Draggable       bool            `json:"draggable,omitempty" toml:"draggable" yaml:"draggable"`
	DragThresholdPx float64         `json:"drag_threshold_px,omitempty" toml:"drag_threshold_px" yaml:"drag_threshold_px"`
	BaseRadiusPx    float64         `json:"base_radius_px,omitempty" toml:"base_radius_px" yaml:"base_radius_px"`
	SpacingPx       float64         `json:"spacing_px,omitempty" toml:"spacing_px" yaml:"spacing_px"`
	InitialOpen     bool            `json:"initial_open,omitempty" toml:"initial_open" yaml:"initial_open"`
	InitialOffset   layout.Offset   `json:"initial_offset" toml:"initial_offset" yaml:"initial_offset"`

	// Controlled hands the open flag to the host: toggles are reported
	// through onToggle and applied only by SetOpen.
	Controlled bool `json:"controlled,omitempty" toml:"controlled" yaml:"controlled"`

	ItemRadiusPx    float64 `json:"item_radius_px,omitempty" toml:"item_radius_px" yaml:"item_radius_px"`
	TriggerRadiusPx float64 `json:"trigger_radius_px,omitempty" toml:"trigger_radius_px" yaml:"trigger_radius_px"`

	// CloseOnSelect is nil until defaults are applied.
	CloseOnSelect *bool `json:"close_on_select,omitempty" toml:"close_on_select" yaml:"close_on_select"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var c Config
	_ = c.ValidateAndSetDefaults()
	return c
}

// ValidateAndSetDefaults checks every field and fills in zero values.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (c *Config) ValidateAndSetDefaults() error {
	if c.validated {
		return nil
	}

	if c.Corner == "" {
		c.Corner = DefaultCorner
	} else if !c.Corner.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown corner %q", string(c.Corner))
	}
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	} else if !c.Strategy.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown strategy %q", string(c.Strategy))
	}

	defaults := []struct {
		name  string
		field *float64
		def   float64
	}{
		{"drag_threshold_px", &c.DragThresholdPx, DefaultDragThresholdPx},
		{"base_radius_px", &c.BaseRadiusPx, DefaultBaseRadiusPx},
		{"spacing_px", &c.SpacingPx, DefaultSpacingPx},
		{"item_radius_px", &c.ItemRadiusPx, DefaultItemRadiusPx},
		{"trigger_radius_px", &c.TriggerRadiusPx, DefaultTriggerRadiusPx},
	}
	for _, d := range defaults {
		if *d.field == 0 {
			*d.field = d.def
		}
		if err := errors.ValidatePositive(d.name, *d.field); err != nil {
			return err
		}
	}

	if !c.InitialOffset.IsFinite() {
		return errors.New(errors.ErrCodeInvalidConfig, "initial_offset must be finite, got %v", c.InitialOffset)
	}
	if c.CloseOnSelect == nil {
		v := DefaultCloseOnSelect
		c.CloseOnSelect = &v
	}

	c.validated = true
	return nil
}

// ClosesOnSelect reports the effective close-on-select setting.
func (c Config) ClosesOnSelect() bool {
	if c.CloseOnSelect == nil {
		return DefaultCloseOnSelect
	}
	return *c.CloseOnSelect
}

// Config file formats recognised by LoadConfig, keyed by extension.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatForPath maps a file extension to a config format.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported config extension %q (must be .toml, .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// LoadConfig reads a Config from path and applies defaults.
func LoadConfig(path string) (Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadConfig decodes a Config from path without validating it, for callers
// that layer further overrides on top before calling ValidateAndSetDefaults.
func ReadConfig(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	format, err := FormatForPath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}

	var cfg Config
	if err := Decode(data, format, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	return cfg, nil
}

// Decode unmarshals data in the given format into v. Unknown keys are
// rejected for YAML and JSON and reported as undecoded for TOML.
func Decode(data []byte, format string, v any) error {
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
		}
		return nil
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && err != io.EOF {
			return err
		}
		return nil
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}
