package script

import (
	"os"
	"strings"

	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/menu"
)

// DefaultTotal is the item count used when a script does not set one.
const DefaultTotal = 5

// Kind names a scripted event.
type Kind string

// Event kinds.
const (
	KindDown    Kind = "down"
	KindMove    Kind = "move"
	KindUp      Kind = "up"
	KindCancel  Kind = "cancel"
	KindToggle  Kind = "toggle"
	KindSelect  Kind = "select"
	KindSetOpen Kind = "set-open"
)

// Kinds lists every event kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindDown, KindMove, KindUp, KindCancel, KindToggle, KindSelect, KindSetOpen}
}

// Valid reports whether k is a known event kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are
// case-insensitive and accept underscores in place of dashes.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(string(text))), "_", "-"))
	if !parsed.Valid() {
		return errors.New(errors.ErrCodeInvalidArgument, "unknown event kind %q", string(text))
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k), nil }

// Event is one step of a script. X and Y apply to pointer events, Index to
// select and Open to set-open.
type Event struct {
	Kind  Kind    `json:"kind" toml:"kind" yaml:"kind"`
	X     float64 `json:"x,omitempty" toml:"x" yaml:"x"`
	Y     float64 `json:"y,omitempty" toml:"y" yaml:"y"`
	Index int     `json:"index,omitempty" toml:"index" yaml:"index"`
	Open  bool    `json:"open,omitempty" toml:"open" yaml:"open"`
}

// Script is a menu configuration, an item count and an ordered event list.
type Script struct {
	Name   string      `json:"name,omitempty" toml:"name" yaml:"name"`
	Total  int         `json:"total,omitempty" toml:"total" yaml:"total"`
	Menu   menu.Config `json:"menu" toml:"menu" yaml:"menu"`
	Events []Event     `json:"events" toml:"events" yaml:"events"`
}

// Validate applies defaults and checks every event.
func (s *Script) Validate() error {
	if s.Total == 0 {
		s.Total = DefaultTotal
	}
	if err := errors.ValidateTotal(s.Total); err != nil {
		return err
	}
	if err := s.Menu.ValidateAndSetDefaults(); err != nil {
		return err
	}
	for i, ev := range s.Events {
		if !ev.Kind.Valid() {
			return errors.New(errors.ErrCodeInvalidArgument, "event %d: unknown kind %q", i, string(ev.Kind))
		}
		if ev.Kind == KindSelect {
			if err := errors.ValidateIndex(ev.Index, s.Total); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidArgument, err, "event %d", i)
			}
		}
	}
	return nil
}

// Load reads a script from a .toml, .yaml/.yml or .json file and validates it.
func Load(path string) (*Script, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := menu.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read script %s", path)
	}
	return Parse(data, format)
}

// Parse decodes and validates a script in the given format.
func Parse(data []byte, format string) (*Script, error) {
	var s Script
	if err := menu.Decode(data, format, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode script")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
