package layout

import (
	"math"

	"github.com/matzehuels/fabmenu/pkg/errors"
)

const (
	// DefaultBaseRadius is the radius of the innermost petal layer.
	DefaultBaseRadius = 56.0

	// DefaultSpacing is the distance between neighbouring items in the
	// vertical and grid strategies. It reuses the petal radius so that all
	// strategies place the first item at the same distance.
	DefaultSpacing = 56.0
)

// Engine computes child offsets. A zero BaseRadius or Spacing uses
// [DefaultBaseRadius] or [DefaultSpacing]; negative or non-finite values
// make every layout call fail.
type Engine struct {
	BaseRadius float64
	Spacing    float64
}

// Option configures an Engine built by [NewEngine].
type Option func(*Engine)

// WithBaseRadius sets the petal radius of layer 0.
func WithBaseRadius(r float64) Option { return func(e *Engine) { e.BaseRadius = r } }

// WithSpacing sets the item pitch for the vertical and grid strategies.
func WithSpacing(s float64) Option { return func(e *Engine) { e.Spacing = s } }

// NewEngine returns an Engine with defaults applied before opts.
func NewEngine(opts ...Option) Engine {
	e := Engine{BaseRadius: DefaultBaseRadius, Spacing: DefaultSpacing}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// ComputeOffset lays out one child with the default engine.
func ComputeOffset(index, total int, s Strategy, c Corner) (Offset, error) {
	return Engine{}.Offset(index, total, s, c)
}

// Offset returns the displacement of child index (of total siblings) from
// the trigger's anchor point. It fails with [errors.ErrCodeInvalidArgument]
// when index is outside [0,total), total < 1, s or c is unknown, or the
// engine dimensions are invalid.
func (e Engine) Offset(index, total int, s Strategy, c Corner) (Offset, error) {
	if err := e.validate(total, s, c); err != nil {
		return Offset{}, err
	}
	if err := errors.ValidateIndex(index, total); err != nil {
		return Offset{}, err
	}
	return e.offset(index, total, s, c), nil
}

// Offsets lays out all total children at once. The result has length total.
func (e Engine) Offsets(total int, s Strategy, c Corner) ([]Offset, error) {
	if err := e.validate(total, s, c); err != nil {
		return nil, err
	}
	out := make([]Offset, total)
	for i := range out {
		out[i] = e.offset(i, total, s, c)
	}
	return out, nil
}

func (e Engine) validate(total int, s Strategy, c Corner) error {
	if err := errors.ValidateTotal(total); err != nil {
		return err
	}
	if err := validateDimension("base radius", e.BaseRadius); err != nil {
		return err
	}
	if err := validateDimension("spacing", e.Spacing); err != nil {
		return err
	}
	if !s.Valid() {
		return errors.New(errors.ErrCodeInvalidArgument, "unknown strategy %q", string(s))
	}
	if !c.Valid() {
		return errors.New(errors.ErrCodeInvalidArgument, "unknown corner %q", string(c))
	}
	return nil
}

// offset assumes its arguments were validated.
func (e Engine) offset(index, total int, s Strategy, c Corner) Offset {
	switch s {
	case Petal:
		return petalOffset(index, total, e.baseRadius(), c)
	case Vertical:
		return verticalOffset(index, e.spacing(), c)
	default:
		return gridOffset(index, total, e.spacing(), c)
	}
}

// validateDimension accepts zero, which selects the default.
func validateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "%s must be a finite number >= 0, got %v", name, v)
	}
	return nil
}

func (e Engine) baseRadius() float64 {
	if e.BaseRadius == 0 {
		return DefaultBaseRadius
	}
	return e.BaseRadius
}

func (e Engine) spacing() float64 {
	if e.Spacing == 0 {
		return DefaultSpacing
	}
	return e.Spacing
}

func verticalOffset(index int, spacing float64, c Corner) Offset {
	return Offset{X: 0, Y: c.YSign() * spacing * float64(index+1)}
}
