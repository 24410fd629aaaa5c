// Package nodelink renders dependency trees as node-link diagrams.
//
// # Usage
//
// Convert a tree to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Layout
//
// The diagram is a graph, not a tree: a package version that several
// parents depend on is drawn once. The root has a heavy border; dependencies
// whose range matched no published version are dashed and grey, labelled
// with the range instead of a version.
//
// # Rendering
//
// [RenderSVG] uses the WebAssembly build of Graphviz bundled by
// go-graphviz, so no system Graphviz installation is needed. The DOT text
// from [ToDOT] can also be fed to the dot command directly.
package nodelink
