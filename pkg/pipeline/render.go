package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/fabmenu/pkg/errors"
	"github.com/matzehuels/fabmenu/pkg/menu"
	"github.com/matzehuels/fabmenu/pkg/render"
	"github.com/matzehuels/fabmenu/pkg/render/nodelink"
	"github.com/matzehuels/fabmenu/pkg/render/sink"
)

// Render generates output artifacts in the requested formats without
// touching any cache.
func Render(ctx context.Context, f menu.Frame, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, f, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format. JSON and DOT are engine
// independent; SVG, PNG and PDF follow opts.Engine.
func RenderFormat(ctx context.Context, f menu.Frame, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case render.FormatJSON:
		data, err = sink.RenderJSON(f, sink.WithJSONIndent(), sink.WithJSONLabel(opts.Label))
	case render.FormatDOT:
		data = []byte(nodelink.ToDOT(f, nodelinkOptions(opts)))
	case render.FormatSVG, render.FormatPNG, render.FormatPDF:
		if opts.IsNodelink() {
			data, err = renderNodelink(ctx, f, format, opts)
		} else {
			data, err = renderSink(f, format, opts)
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}

func renderSink(f menu.Frame, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)
	switch format {
	case render.FormatPNG:
		return sink.RenderPNG(f, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case render.FormatPDF:
		return sink.RenderPDF(f, svgOpts...)
	default:
		return sink.RenderSVG(f, svgOpts...), nil
	}
}

func renderNodelink(ctx context.Context, f menu.Frame, format string, opts Options) ([]byte, error) {
	dot := nodelink.ToDOT(f, nodelinkOptions(opts))
	switch format {
	case render.FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case render.FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	default:
		data, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, fmt.Errorf("graphviz: %w", err)
		}
		return data, nil
	}
}

// buildSVGOptions maps pipeline options to sink SVG options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Guides {
		svgOpts = append(svgOpts, sink.WithGuides())
	}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Ghosts {
		svgOpts = append(svgOpts, sink.WithGhosts())
	}
	return svgOpts
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed, Collapsed: opts.Ghosts}
}
