package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/fabmenu/pkg/layout"
	"github.com/matzehuels/fabmenu/pkg/menu"
)

const (
	svgMargin = 16.0

	colorTrigger     = "#0891b2"
	colorTriggerDrag = "#d97706"
	colorItem        = "#ffffff"
	colorStroke      = "#1f2937"
	colorGuide       = "#cbd5e1"
)

const frameCSS = `
    .item { transition: transform 0.2s ease; }
    .ghost { opacity: 0.25; }
    .label { font-family: sans-serif; font-size: 12px; text-anchor: middle; dominant-baseline: central; }
    .glyph { font-family: sans-serif; font-size: 20px; fill: #ffffff; text-anchor: middle; dominant-baseline: central; }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	guides bool
	labels bool
	ghosts bool
}

// WithGuides draws the petal layer rings behind the items.
func WithGuides() SVGOption { return func(r *svgRenderer) { r.guides = true } }

// WithLabels numbers each item from 1.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithGhosts draws faded items when the menu is closed.
func WithGhosts() SVGOption { return func(r *svgRenderer) { r.ghosts = true } }

// RenderSVG draws the frame as a standalone SVG document. Output is
// deterministic for a given frame and option set.
func RenderSVG(f menu.Frame, opts ...SVGOption) []byte {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}

	showItems := f.Open || r.ghosts
	rings := r.rings(f)
	b := frameBounds(f, showItems, rings)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		b.minX, b.minY, b.width(), b.height(), math.Ceil(b.width()), math.Ceil(b.height()))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", frameCSS)
	fmt.Fprintf(&buf, `  <g id="menu" data-corner="%s" data-strategy="%s" data-open="%t" data-dragging="%t">`+"\n",
		f.Corner, f.Strategy, f.Open, f.Dragging)

	for _, radius := range rings {
		fmt.Fprintf(&buf, `    <circle class="guide" cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-dasharray="4 4"/>`+"\n",
			f.Anchor.X, f.Anchor.Y, radius, colorGuide)
	}

	if showItems {
		class := "item"
		if !f.Open {
			class = "item ghost"
		}
		for i := range f.Children {
			p := f.ChildPosition(i)
			fmt.Fprintf(&buf, `    <circle id="item-%d" class="%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
				i, class, p.X, p.Y, f.ItemRadius, colorItem, colorStroke)
			if r.labels {
				fmt.Fprintf(&buf, `    <text class="label" x="%.2f" y="%.2f">%d</text>`+"\n", p.X, p.Y, i+1)
			}
		}
	}

	fill := colorTrigger
	if f.Dragging {
		fill = colorTriggerDrag
	}
	glyph := "+"
	if f.Open {
		glyph = "×"
	}
	fmt.Fprintf(&buf, `    <circle id="trigger" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		f.Anchor.X, f.Anchor.Y, f.TriggerRadius, fill, colorStroke)
	fmt.Fprintf(&buf, `    <text class="glyph" x="%.2f" y="%.2f">%s</text>`+"\n", f.Anchor.X, f.Anchor.Y, glyph)

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) rings(f menu.Frame) []float64 {
	if !r.guides || f.Strategy != layout.Petal || f.Total() == 0 {
		return nil
	}
	n := layout.PetalLayers(f.Total())
	rings := make([]float64, n)
	for l := range rings {
		rings[l] = f.BaseRadius * float64(l+1)
	}
	return rings
}

type bounds struct{ minX, minY, maxX, maxY float64 }

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }

func (b *bounds) include(c layout.Offset, radius float64) {
	b.minX = math.Min(b.minX, c.X-radius)
	b.minY = math.Min(b.minY, c.Y-radius)
	b.maxX = math.Max(b.maxX, c.X+radius)
	b.maxY = math.Max(b.maxY, c.Y+radius)
}

func frameBounds(f menu.Frame, items bool, rings []float64) bounds {
	b := bounds{minX: f.Anchor.X, minY: f.Anchor.Y, maxX: f.Anchor.X, maxY: f.Anchor.Y}
	b.include(f.Anchor, f.TriggerRadius)
	if items {
		for i := range f.Children {
			b.include(f.ChildPosition(i), f.ItemRadius)
		}
	}
	for _, radius := range rings {
		b.include(f.Anchor, radius)
	}
	b.minX -= svgMargin
	b.minY -= svgMargin
	b.maxX += svgMargin
	b.maxY += svgMargin
	return b
}
