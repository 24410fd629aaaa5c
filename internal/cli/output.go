package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/pipeline"
)

func formatList() string { return strings.Join(pipeline.Formats, "|") }

// writeTree renders root in format to path, or to stdout if path is empty.
// The file is only created once rendering succeeded.
func writeTree(ctx context.Context, root *deps.Node, format, path string, opts pipeline.RenderOptions) error {
	opts.Plain = opts.Plain || path != ""
	data, err := pipeline.Render(ctx, root, format, opts)
	if err != nil {
		return err
	}

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
