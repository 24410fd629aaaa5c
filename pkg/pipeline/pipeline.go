// Package pipeline runs resolve → render with a tree cache, shared by the
// CLI and the HTTP service.
//
// # Usage
//
//	runner := pipeline.NewRunner(resolver, treeCache, nil, logger)
//	runner.Registry = npm.DefaultRegistryURL
//
//	res, err := runner.Resolve(ctx, "express", "4.18.2", false)
//	if err != nil {
//	    return err
//	}
//	svg, err := pipeline.Render(ctx, res.Tree, pipeline.FormatSVG, pipeline.RenderOptions{})
//
// # Caching
//
// Only finished trees are cached, keyed by registry, package, version and
// the resolver limits. Trees resolved from a local manifest are never
// cached. A cache entry that no longer decodes is treated as a miss.
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/deps"
	pkgio "github.com/matzehuels/deptree/pkg/io"
	"github.com/matzehuels/deptree/pkg/render"
)

// DefaultTTL is how long a resolved tree stays cached.
const DefaultTTL = 24 * time.Hour

// Runner resolves trees through a cache. It holds no per-call state, so
// one Runner can serve concurrent calls.
type Runner struct {
	Resolver *deps.Resolver
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Registry string        // Included in cache keys
	TTL      time.Duration // Cache entry lifetime (0 = no expiry)
}

// Result is a resolved tree with its JSON encoding.
type Result struct {
	Tree     *deps.Node
	Data     []byte // JSON encoding of Tree
	CacheHit bool
	Stats    render.Stats
	Duration time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses log.Default().
func NewRunner(r *deps.Resolver, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Resolver: r,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		TTL:      DefaultTTL,
	}
}

// Key returns the cache key for name@version under the resolver's limits.
func (r *Runner) Key(name, version string) string {
	opts := r.Resolver.Options()
	return r.Keyer.TreeKey(r.Registry, name, version, cache.TreeKeyOpts{
		MaxDepth: opts.MaxDepth,
		MaxNodes: opts.MaxNodes,
	})
}

// Resolve returns the tree of name@version, from the cache unless refresh
// is set. A fresh tree is written back to the cache.
func (r *Runner) Resolve(ctx context.Context, name, version string, refresh bool) (*Result, error) {
	start := time.Now()
	key := r.Key(name, version)

	if !refresh {
		if res, ok := r.cached(ctx, key); ok {
			res.Duration = time.Since(start)
			return res, nil
		}
	}

	root, err := r.Resolver.Tree(ctx, name, version)
	if err != nil {
		return nil, err
	}
	res, err := newResult(root)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, res.Data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	}

	res.Duration = time.Since(start)
	r.Logger.Debug("resolved tree", "package", name, "version", version,
		"nodes", res.Stats.Nodes, "duration", res.Duration)
	return res, nil
}

// ResolveManifest resolves the dependencies declared by m. The result is
// not cached.
func (r *Runner) ResolveManifest(ctx context.Context, m *deps.Manifest) (*Result, error) {
	start := time.Now()
	name, version := m.Name, m.Version
	if name == "" {
		name = "(root)"
	}
	if version == "" {
		version = "0.0.0"
	}

	root, err := r.Resolver.ResolveDependencies(ctx, name, version, m.Dependencies)
	if err != nil {
		return nil, err
	}
	res, err := newResult(root)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

func (r *Runner) cached(ctx context.Context, key string) (*Result, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	root, err := pkgio.UnmarshalJSON(data)
	if err != nil {
		r.Logger.Warn("ignoring unreadable cache entry", "key", key, "err", err)
		return nil, false
	}
	return &Result{Tree: root, Data: data, CacheHit: true, Stats: render.Summarize(root)}, true
}

func newResult(root *deps.Node) (*Result, error) {
	data, err := pkgio.MarshalJSON(root)
	if err != nil {
		return nil, err
	}
	return &Result{Tree: root, Data: data, Stats: render.Summarize(root)}, nil
}
