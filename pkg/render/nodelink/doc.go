// Package nodelink renders menu frames as Graphviz node-link diagrams.
//
// # Overview
//
// The trigger and each item become circle nodes joined by undirected edges.
// Every node is pinned at its frame position (pos="x,y!" with
// inputscale=72), so the neato engine only draws and never moves anything.
//
// # Usage
//
//	dot := nodelink.ToDOT(frame, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
