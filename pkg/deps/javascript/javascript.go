package javascript

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/integrations"
	"github.com/matzehuels/deptree/pkg/integrations/npm"
)

// Fetcher adapts an [npm.Client] to [deps.Fetcher].
type Fetcher struct {
	client *npm.Client
}

// NewFetcher returns a deps.Fetcher backed by client.
func NewFetcher(client *npm.Client) *Fetcher {
	return &Fetcher{client: client}
}

// NewResolver returns a resolver for the npm-compatible registry at
// registryURL ("" for the public registry).
func NewResolver(registryURL string, opts ...deps.Option) *deps.Resolver {
	return deps.NewResolver(NewFetcher(npm.NewClient(registryURL, nil)), opts...)
}

// FetchMetadata fetches name from the registry. A missing package fails
// with NOT_FOUND; transport failures and unusable documents fail with
// UPSTREAM_ERROR. Both name the package. Cancellation is returned as is.
func (f *Fetcher) FetchMetadata(ctx context.Context, name string) (*deps.Metadata, error) {
	doc, err := f.client.FetchMetadata(ctx, name)
	if err != nil {
		switch {
		case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
			return nil, err
		case stderrors.Is(err, integrations.ErrNotFound):
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "package %s not found in registry", name)
		default:
			return nil, errors.Wrap(errors.ErrCodeUpstream, err, "fetching %s", name)
		}
	}
	return toMetadata(doc), nil
}

func toMetadata(doc *npm.Packument) *deps.Metadata {
	md := &deps.Metadata{
		Name:     doc.Name,
		Versions: make(map[string]deps.VersionRecord, len(doc.Versions)),
		DistTags: doc.DistTags,
	}
	for v, m := range doc.Versions {
		version := m.Version
		if version == "" {
			version = v
		}
		md.Versions[v] = deps.VersionRecord{Version: version, Dependencies: m.Dependencies}
	}
	return md
}
