// Package render turns resolved dependency trees into something to look at.
//
// # Overview
//
//   - [nodelink]: Graphviz DOT and SVG node-link diagrams
//   - [termtree]: indented terminal trees styled with lipgloss
//   - this package: summary statistics and SVG to PDF/PNG conversion
//
// # Statistics
//
// [Summarize] walks a tree once and reports how many nodes it places, how
// many of them are distinct name@version pairs, how deep it goes and how
// many dependencies could not be matched to a published version.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG using the external rsvg-convert tool
// (from librsvg):
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/matzehuels/deptree/pkg/render/nodelink
// [termtree]: github.com/matzehuels/deptree/pkg/render/termtree
package render
