package layout

import (
	"strings"

	"github.com/matzehuels/fabmenu/pkg/errors"
)

// Strategy selects how children are arranged around the trigger.
type Strategy string

// Supported layout strategies.
const (
	Petal    Strategy = "petal"    // concentric quarter-circle layers
	Vertical Strategy = "vertical" // single-axis stack
	Grid     Strategy = "grid"     // row-major square-ish grid
)

// Strategies lists every supported strategy in a stable order.
func Strategies() []Strategy {
	return []Strategy{Petal, Vertical, Grid}
}

// ParseStrategy converts a user-supplied name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", errors.New(errors.ErrCodeInvalidArgument,
			"unknown strategy %q (must be one of: petal, vertical, grid)", s)
	}
	return st, nil
}

// Valid reports whether s is a supported strategy.
func (s Strategy) Valid() bool {
	switch s {
	case Petal, Vertical, Grid:
		return true
	}
	return false
}

func (s Strategy) String() string { return string(s) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s), nil
}
