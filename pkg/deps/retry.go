package deps

import (
	"context"

	"github.com/matzehuels/deptree/pkg/httputil"
)

// WithRetry wraps f so that transient failures (those marked with
// [httputil.RetryableError]) are retried according to p. Each attempt is a
// separate lookup; nothing is cached between attempts.
func WithRetry(f Fetcher, p httputil.Policy) Fetcher {
	if p.Attempts <= 1 {
		return f
	}
	return FetcherFunc(func(ctx context.Context, name string) (*Metadata, error) {
		var md *Metadata
		err := httputil.Retry(ctx, p, func() error {
			var err error
			md, err = f.FetchMetadata(ctx, name)
			return err
		})
		return md, err
	})
}
