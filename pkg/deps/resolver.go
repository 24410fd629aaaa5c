package deps

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/observability"
)

// Resolver builds dependency trees from registry metadata.
//
// All fetches made by a Resolver, at every depth and for every concurrent
// call, pass through one [Gate]. Everything else is request-scoped: each
// call fetches its own metadata and builds its own tree.
type Resolver struct {
	fetcher Fetcher
	gate    *Gate
	opts    Options
}

// NewResolver returns a Resolver backed by fetcher. Without options it
// allows [DefaultMaxConcurrent] concurrent fetches and uses the default
// [Options].
func NewResolver(fetcher Fetcher, options ...Option) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		gate:    NewGate(DefaultMaxConcurrent),
		opts:    Options{}.WithDefaults(),
	}
	for _, o := range options {
		o(r)
	}
	return r
}

// Gate returns the gate shared by all of r's fetches.
func (r *Resolver) Gate() *Gate { return r.gate }

// Options returns the bounds r applies to each resolution.
func (r *Resolver) Options() Options { return r.opts }

// Tree resolves name at the exact version and returns the root node.
// The version must be published, otherwise VERSION_NOT_FOUND is returned.
// Any failure anywhere in the tree fails the whole call.
func (r *Resolver) Tree(ctx context.Context, name, version string) (*Node, error) {
	start := time.Now()
	observability.Resolve().OnResolveStart(ctx, name, version)

	st, err := r.tree(ctx, name, version)

	nodes := 0
	if err == nil {
		nodes = st.size
	}
	observability.Resolve().OnResolveComplete(ctx, name, version, nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return st.node, nil
}

// ResolveRoot resolves the direct dependencies of name at the exact version
// and returns them keyed by dependency name.
func (r *Resolver) ResolveRoot(ctx context.Context, name, version string) (map[string]*Node, error) {
	root, err := r.Tree(ctx, name, version)
	if err != nil {
		return nil, err
	}
	return root.Dependencies, nil
}

// Resolve resolves a single (name, range) pair. A range matching no
// published version yields an unresolved node carrying the range as its
// version; an unknown package is still an error.
func (r *Resolver) Resolve(ctx context.Context, name, rng string) (*Node, error) {
	if err := errors.ValidatePackageName(name); err != nil {
		return nil, err
	}

	c := newCrawler(ctx, r.fetcher, r.gate, r.opts)
	key := rangeKey{name: name, rng: rng}
	err := c.crawl([]job{{key: key}})
	c.close()
	if err != nil {
		return nil, contextError(ctx, name, err)
	}

	st, err := newAssembler(c.arena, r.opts).build(key, 0)
	if err != nil {
		return nil, err
	}
	return st.node, nil
}

// ResolveDependencies resolves a dependency set that is not itself
// published, such as one read from a local package.json, and returns it
// under a root node named name@version.
func (r *Resolver) ResolveDependencies(ctx context.Context, name, version string, dependencies map[string]string) (*Node, error) {
	start := time.Now()
	observability.Resolve().OnResolveStart(ctx, name, version)

	c := newCrawler(ctx, r.fetcher, r.gate, r.opts)
	st, err := r.assemble(ctx, c, name, version, dependencies)

	nodes := 0
	if err == nil {
		nodes = st.size
	}
	observability.Resolve().OnResolveComplete(ctx, name, version, nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return st.node, nil
}

func (r *Resolver) tree(ctx context.Context, name, version string) (subtree, error) {
	if err := errors.ValidatePackageName(name); err != nil {
		return subtree{}, err
	}
	if err := errors.ValidateVersion(version); err != nil {
		return subtree{}, err
	}

	c := newCrawler(ctx, r.fetcher, r.gate, r.opts)
	md, err := c.fetch(name)
	if err == nil && md == nil {
		err = errors.New(errors.ErrCodeUpstream, "registry returned no metadata for %s", name)
	}
	if err != nil {
		c.close()
		return subtree{}, contextError(ctx, name, err)
	}

	rec, ok := md.Versions[version]
	if !ok {
		c.close()
		return subtree{}, errors.New(errors.ErrCodeVersionNotFound, "%s@%s is not published", name, version)
	}
	c.remember(name, md)

	return r.assemble(ctx, c, name, version, rec.Dependencies)
}

// assemble crawls deps as the direct dependencies of name@version, closes
// c and builds the tree.
func (r *Resolver) assemble(ctx context.Context, c *crawler, name, version string, deps map[string]string) (subtree, error) {
	seeds := make([]job, 0, len(deps))
	for _, dep := range SortedNames(deps) {
		seeds = append(seeds, job{key: rangeKey{name: dep, rng: deps[dep]}, depth: 1})
	}

	err := c.crawl(seeds)
	c.close()
	if err != nil {
		return subtree{}, contextError(ctx, name, err)
	}

	r.opts.Logger("resolved %d distinct dependencies of %s@%s", len(c.arena), name, version)
	return newAssembler(c.arena, r.opts).buildVersion(name, version, deps, 0)
}

// contextError reports cancellation of the caller's context in preference
// to whatever error a fetch happened to return while being cancelled.
func contextError(ctx context.Context, name string, err error) error {
	ctxErr := ctx.Err()
	if ctxErr == nil {
		return err
	}
	if stderrors.Is(ctxErr, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, ctxErr, "resolving %s", name)
	}
	return ctxErr
}
