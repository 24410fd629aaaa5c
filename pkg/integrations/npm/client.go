package npm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/matzehuels/deptree/pkg/integrations"
)

// DefaultRegistryURL is the public npm registry.
const DefaultRegistryURL = "https://registry.npmjs.org"

// abbreviatedAccept requests the abbreviated ("corgi") packument, which
// carries versions, dist-tags and dependencies but drops readmes and
// per-version descriptions.
const abbreviatedAccept = "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8"

// Packument is a package document as served by the registry.
type Packument struct {
	Name     string              `json:"name"`
	DistTags map[string]string   `json:"dist-tags"`
	Versions map[string]Manifest `json:"versions"`
}

// Manifest is one published version inside a [Packument].
type Manifest struct {
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient returns a client for the registry at baseURL. An empty baseURL
// uses [DefaultRegistryURL]; a nil httpClient uses the integrations default.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultRegistryURL
	}
	return &Client{
		Client:  integrations.NewClient(httpClient, map[string]string{"Accept": abbreviatedAccept}),
		baseURL: baseURL,
	}
}

// BaseURL returns the registry base URL requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchMetadata performs one GET for the named package and returns its
// packument. A document without a "versions" object is rejected with
// [integrations.ErrMalformed].
func (c *Client) FetchMetadata(ctx context.Context, pkg string) (*Packument, error) {
	pkg = integrations.NormalizePkgName(pkg)
	if pkg == "" {
		return nil, errors.New("npm: empty package name")
	}

	var doc Packument
	if err := c.Get(ctx, integrations.JoinURL(c.baseURL, pkg), &doc); err != nil {
		switch {
		case errors.Is(err, integrations.ErrNotFound):
			return nil, fmt.Errorf("%w: npm package %s", err, pkg)
		case errors.Is(err, integrations.ErrMalformed):
			return nil, fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return nil, err
	}

	if doc.Versions == nil {
		return nil, fmt.Errorf("%w: npm package %s has no versions", integrations.ErrMalformed, pkg)
	}
	if doc.Name == "" {
		doc.Name = pkg
	}
	return &doc, nil
}
