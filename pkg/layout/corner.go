package layout

import (
	"strings"

	"github.com/matzehuels/fabmenu/pkg/errors"
)

// Corner identifies the screen corner a menu is anchored to.
type Corner string

// Supported anchor corners.
const (
	BottomRight Corner = "bottom-right"
	BottomLeft  Corner = "bottom-left"
	TopRight    Corner = "top-right"
	TopLeft     Corner = "top-left"
)

// Corners lists every supported corner in a stable order.
func Corners() []Corner {
	return []Corner{BottomRight, BottomLeft, TopRight, TopLeft}
}

// ParseCorner converts a user-supplied name to a Corner.
// Matching is case-insensitive and accepts underscores in place of dashes.
func ParseCorner(s string) (Corner, error) {
	c := Corner(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if !c.Valid() {
		return "", errors.New(errors.ErrCodeInvalidArgument,
			"unknown corner %q (must be one of: bottom-right, bottom-left, top-right, top-left)", s)
	}
	return c, nil
}

// Valid reports whether c is one of the four supported corners.
func (c Corner) Valid() bool {
	switch c {
	case BottomRight, BottomLeft, TopRight, TopLeft:
		return true
	}
	return false
}

func (c Corner) String() string { return string(c) }

// IsBottom reports whether the corner sits on the bottom screen edge.
func (c Corner) IsBottom() bool { return c == BottomRight || c == BottomLeft }

// IsRight reports whether the corner sits on the right screen edge.
func (c Corner) IsRight() bool { return c == BottomRight || c == TopRight }

// XSign is -1 for right-anchored corners and +1 otherwise.
func (c Corner) XSign() float64 {
	if c.IsRight() {
		return -1
	}
	return 1
}

// YSign is -1 for bottom-anchored corners and +1 otherwise.
func (c Corner) YSign() float64 {
	if c.IsBottom() {
		return -1
	}
	return 1
}

// UnmarshalText implements encoding.TextUnmarshaler so configs in TOML,
// YAML and JSON are validated while decoding.
func (c *Corner) UnmarshalText(text []byte) error {
	parsed, err := ParseCorner(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Corner) MarshalText() ([]byte, error) {
	return []byte(c), nil
}
