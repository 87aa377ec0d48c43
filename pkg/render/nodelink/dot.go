package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/menu"
	"github.com/matzehuels/fabmenu/pkg/render"
)

// pointsPerInch converts pixel radii to Graphviz node sizes.
const pointsPerInch = 72.0

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed labels each item with its offset from the trigger.
	// When false, items are numbered from 1.
	Detailed bool

	// Collapsed draws the items of a closed menu. By default a closed menu
	// renders only its trigger.
	Collapsed bool
}

// ToDOT converts a frame to Graphviz DOT with every node pinned at its
// frame position. Screen Y grows downward, so Y is negated for Graphviz.
// The result is meant for the neato engine used by [RenderSVG].
func ToDOT(f menu.Frame, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph menu {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  inputscale=%g;\n", pointsPerInch)
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, fixedsize=true, style=filled, fillcolor=white, fontsize=10];\n")
	buf.WriteString("\n")

	triggerFill := "cyan3"
	if f.Dragging {
		triggerFill = "orange"
	}
	fmt.Fprintf(&buf, "  trigger [label=%q, width=%s, pos=%q, fillcolor=%s];\n",
		triggerLabel(f), inches(f.TriggerRadius), pos(f.Anchor.X, f.Anchor.Y), triggerFill)

	if !f.Open && !opts.Collapsed {
		buf.WriteString("}\n")
		return buf.String()
	}

	buf.WriteString("\n")
	for i, off := range f.Children {
		p := f.ChildPosition(i)
		label := strconv.Itoa(i + 1)
		if opts.Detailed {
			label = fmt.Sprintf("%d\n(%.1f, %.1f)", i+1, off.X, off.Y)
		}
		attrs := fmt.Sprintf("label=%q, width=%s, pos=%q", label, inches(f.ItemRadius), pos(p.X, p.Y))
		if !f.Open {
			attrs += ", style=\"filled,dashed\", fillcolor=lightgrey"
		}
		fmt.Fprintf(&buf, "  item%d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	for i := range f.Children {
		fmt.Fprintf(&buf, "  trigger -- item%d [color=gray];\n", i)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func triggerLabel(f menu.Frame) string {
	if f.Open {
		return "×"
	}
	return "+"
}

func inches(radius float64) string {
	return strconv.FormatFloat(2*radius/pointsPerInch, 'f', 3, 64)
}

func pos(x, y float64) string {
	fy := -y
	if fy == 0 {
		fy = 0 // no "-0.00"
	}
	return fmt.Sprintf("%.2f,%.2f!", x, fy)
}

// RenderSVG lays out a DOT graph with neato and renders it to SVG.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
