// Package render turns menu frames into images and documents.
//
// # Overview
//
// A [menu.Frame] is the render tuple of one tick: the open flag, the drag
// state, the anchor offset and the child offsets. This package and its
// subpackages draw it:
//
//   - [sink]: self-contained SVG and JSON output
//   - [nodelink]: Graphviz DOT with pinned positions, rendered in-process
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(frame, sink.WithGuides())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [menu.Frame]: github.com/matzehuels/fabmenu/pkg/menu#Frame
// [sink]: github.com/matzehuels/fabmenu/pkg/render/sink
// [nodelink]: github.com/matzehuels/fabmenu/pkg/render/nodelink
package render
