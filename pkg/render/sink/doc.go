// Package sink writes menu frames to output formats.
//
// [RenderSVG] draws the trigger and its items in anchor-relative
// coordinates; the viewBox is fitted to whatever is drawn. [RenderJSON]
// emits the same frame as a document with relative and absolute item
// positions. [RenderPNG] and [RenderPDF] convert the SVG with rsvg-convert.
package sink
