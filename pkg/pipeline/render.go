package pipeline

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/deptree/pkg/deps"
	pkgio "github.com/matzehuels/deptree/pkg/io"
	"github.com/matzehuels/deptree/pkg/render"
	"github.com/matzehuels/deptree/pkg/render/nodelink"
	"github.com/matzehuels/deptree/pkg/render/termtree"
)

// Output formats.
const (
	FormatJSON  = "json"  // Nested tree
	FormatYAML  = "yaml"  // Nested tree
	FormatGraph = "graph" // Flat nodes and edges
	FormatTree  = "tree"  // Indented terminal tree
	FormatDOT   = "dot"   // Graphviz source
	FormatSVG   = "svg"   // Node-link diagram
	FormatPDF   = "pdf"   // Node-link diagram (requires rsvg-convert)
	FormatPNG   = "png"   // Node-link diagram (requires rsvg-convert)
)

// Formats lists every supported output format.
var Formats = []string{FormatJSON, FormatYAML, FormatGraph, FormatTree, FormatDOT, FormatSVG, FormatPDF, FormatPNG}

// ValidateFormat checks that format is supported. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// RenderOptions tunes individual formats.
type RenderOptions struct {
	Detailed bool    // Dependency counts in diagram labels
	Expand   bool    // Print repeated subtrees in the terminal tree
	MaxDepth int     // Terminal tree depth limit (0 = unlimited)
	Plain    bool    // No colors in the terminal tree
	Scale    float64 // PNG scale factor (default 2)
}

// Render encodes root in format.
func Render(ctx context.Context, root *deps.Node, format string, opts RenderOptions) ([]byte, error) {
	var sb strings.Builder
	switch format {
	case FormatJSON:
		if err := pkgio.WriteJSON(root, &sb); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := pkgio.WriteYAML(root, &sb); err != nil {
			return nil, err
		}
	case FormatGraph:
		if err := pkgio.WriteGraphJSON(root, &sb); err != nil {
			return nil, err
		}
	case FormatTree:
		sb.WriteString(termtree.Render(root, termtree.Options{MaxDepth: opts.MaxDepth, Expand: opts.Expand, Plain: opts.Plain}))
		sb.WriteString("\n")
	case FormatDOT:
		sb.WriteString(nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed}))
	case FormatSVG, FormatPDF, FormatPNG:
		svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed}))
		if err != nil {
			return nil, err
		}
		switch format {
		case FormatPDF:
			return render.ToPDF(ctx, svg)
		case FormatPNG:
			scale := opts.Scale
			if scale <= 0 {
				scale = 2
			}
			return render.ToPNG(ctx, svg, scale)
		}
		return svg, nil
	default:
		return nil, ValidateFormat(format)
	}
	return []byte(sb.String()), nil
}
