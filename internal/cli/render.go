package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/io"
	"github.com/matzehuels/deptree/pkg/pipeline"
	"github.com/matzehuels/deptree/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (several)
	formats  []string // output formats
	detailed bool     // extra detail in DOT/SVG labels
	depth    int      // tree format depth limit
}

// renderCommand creates the render command, which converts a saved JSON
// tree into other formats without contacting the registry.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <tree.json>",
		Short: "Render a saved dependency tree",
		Long: `Render a dependency tree previously written by "deptree resolve -f json".

Several formats may be given at once; each is written next to the output
base path with its own extension.

Examples:
  deptree render express.json -f svg
  deptree render express.json -f svg,png,tree -o out/express`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := pipeline.ValidateFormat(f); err != nil {
					return err
				}
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s), comma-separated: "+formatList()+" (default svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show dependency counts in dot/svg labels")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "limit printed depth (tree format, 0 = unlimited)")

	return cmd
}

// parseFormats splits the --format flag. If empty, defaults to svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path from the output and input paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where format is written. A single format with an
// explicit output path is written there verbatim.
func outputPath(opts *renderOpts, input, format string) string {
	if len(opts.formats) == 1 && opts.output != "" {
		return opts.output
	}
	ext := format
	if format == pipeline.FormatTree {
		ext = "txt"
	} else if format == pipeline.FormatGraph {
		ext = "graph.json"
	}
	return basePath(opts.output, input) + "." + ext
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	root, err := io.ImportJSON(input)
	if err != nil {
		return err
	}
	stats := render.Summarize(root)
	logger.Infof("Loaded %s: %d nodes, %d unique", root.ID(), stats.Nodes, stats.Unique)

	for _, format := range opts.formats {
		path := outputPath(opts, input, format)
		if filepath.Clean(path) == filepath.Clean(input) {
			return fmt.Errorf("refusing to overwrite input %s (use --output)", input)
		}
		if err := writeTree(ctx, root, format, path, pipeline.RenderOptions{
			Detailed: opts.detailed,
			MaxDepth: opts.depth,
		}); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}
