package layout

import "math"

// Offset is a 2-D displacement in user units (typically pixels).
// +X points right and +Y points down.
type Offset struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// Add returns o + p.
func (o Offset) Add(p Offset) Offset { return Offset{X: o.X + p.X, Y: o.Y + p.Y} }

// Sub returns o - p.
func (o Offset) Sub(p Offset) Offset { return Offset{X: o.X - p.X, Y: o.Y - p.Y} }

// Manhattan returns |X| + |Y|.
func (o Offset) Manhattan() float64 { return math.Abs(o.X) + math.Abs(o.Y) }

// Len returns the Euclidean length of o.
func (o Offset) Len() float64 { return math.Hypot(o.X, o.Y) }

// IsFinite reports whether both components are neither NaN nor infinite.
func (o Offset) IsFinite() bool {
	return !math.IsNaN(o.X) && !math.IsInf(o.X, 0) && !math.IsNaN(o.Y) && !math.IsInf(o.Y, 0)
}
