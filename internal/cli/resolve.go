package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/deps/javascript"
	"github.com/matzehuels/deptree/pkg/pipeline"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	resolverFlags

	format   string // output format
	output   string // output file path (stdout if empty)
	detailed bool   // extra detail in DOT/SVG labels
	expand   bool   // print repeated subtrees in tree format
	depth    int    // tree format depth limit
	noCache  bool   // skip the tree cache entirely
	refresh  bool   // resolve again and overwrite the cached tree
	progress bool   // live progress display on stderr
	manifest string // resolve a local package.json instead of a published version
	dev      bool   // include devDependencies from the manifest
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	opts := resolveOpts{format: pipeline.FormatJSON}

	cmd := &cobra.Command{
		Use:   "resolve <package> <version>",
		Short: "Resolve the dependency tree of a published package version",
		Long: `Resolve the full dependency tree of a published npm package version.

Every dependency range is matched to the highest published version that
satisfies it. Ranges that no version satisfies are kept in the tree and
marked unresolved. A dependency cycle fails with CYCLE_DETECTED.

Examples:
  deptree resolve express 4.18.2
  deptree resolve @types/node 20.11.0 --format tree
  deptree resolve react 18.2.0 --format svg -o react.svg
  deptree resolve --manifest ./package.json --dev`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.manifest != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.apply(cmd, c.config)
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner := c.newRunner(ctx, &opts.resolverFlags, opts.noCache)
			defer runner.Close()

			var (
				res *pipeline.Result
				err error
			)
			if opts.manifest != "" {
				res, err = c.resolveManifest(ctx, &opts, runner)
			} else {
				res, err = c.resolvePackage(ctx, &opts, runner, args[0], args[1])
			}
			if err != nil {
				return err
			}
			return c.finish(ctx, &opts, res)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+formatList())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show dependency counts in dot/svg labels")
	cmd.Flags().BoolVar(&opts.expand, "expand", false, "print repeated subtrees in full (tree format)")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "limit printed depth (tree format, 0 = unlimited)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the tree cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore a cached tree and resolve again")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "show live progress while resolving")
	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "resolve the dependencies of a local package.json")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "include devDependencies (with --manifest)")

	return cmd
}

// newRunner builds a pipeline runner from the resolver flags and the
// configured cache.
func (c *CLI) newRunner(ctx context.Context, flags *resolverFlags, noCache bool) *pipeline.Runner {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(flags.newResolver(logger), c.openCache(ctx, noCache), nil, logger)
	runner.Registry = flags.registry
	runner.TTL = c.config.Cache.TTL
	return runner
}

func (c *CLI) resolvePackage(ctx context.Context, opts *resolveOpts, runner *pipeline.Runner, name, version string) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)
	logger.Infof("Resolving %s@%s from %s", name, version, opts.registry)

	return c.run(ctx, opts, runner, name+"@"+version, func(ctx context.Context) (*pipeline.Result, error) {
		return runner.Resolve(ctx, name, version, opts.refresh)
	})
}

func (c *CLI) resolveManifest(ctx context.Context, opts *resolveOpts, runner *pipeline.Runner) (*pipeline.Result, error) {
	parser, err := deps.DetectManifest(opts.manifest, &javascript.PackageJSON{IncludeDev: opts.dev})
	if err != nil {
		return nil, err
	}
	m, err := parser.Parse(opts.manifest)
	if err != nil {
		return nil, err
	}

	loggerFromContext(ctx).Infof("Resolving %d dependencies of %s (%s)", len(m.Dependencies), opts.manifest, parser.Type())
	return c.run(ctx, opts, runner, opts.manifest, func(ctx context.Context) (*pipeline.Result, error) {
		return runner.ResolveManifest(ctx, m)
	})
}

// run executes resolve under the configured timeout, with a progress
// display when requested.
func (c *CLI) run(ctx context.Context, opts *resolveOpts, runner *pipeline.Runner, label string, resolve func(context.Context) (*pipeline.Result, error)) (*pipeline.Result, error) {
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	var res *pipeline.Result
	fn := func(ctx context.Context) error {
		var err error
		res, err = resolve(ctx)
		return err
	}

	var err error
	if opts.progress {
		err = runWithProgress(ctx, label, runner.Resolver.Gate(), fn)
	} else {
		err = fn(ctx)
	}
	if err != nil {
		return nil, err
	}

	logger := loggerFromContext(ctx)
	if res.CacheHit {
		logger.Infof("Using cached tree for %s (%d packages)", label, res.Stats.Nodes)
	} else {
		logger.Infof("Resolved %d packages (%d unique, depth %d, peak %d concurrent fetches) (%s)",
			res.Stats.Nodes, res.Stats.Unique, res.Stats.Depth, runner.Resolver.Gate().Peak(),
			res.Duration.Round(time.Millisecond))
	}
	return res, nil
}

// finish writes the tree in the requested format and reports where it went.
func (c *CLI) finish(ctx context.Context, opts *resolveOpts, res *pipeline.Result) error {
	if n := res.Stats.Unresolved; n > 0 {
		loggerFromContext(ctx).Warnf("%d dependencies matched no published version", n)
	}

	if err := writeTree(ctx, res.Tree, opts.format, opts.output, pipeline.RenderOptions{
		Detailed: opts.detailed,
		Expand:   opts.expand,
		MaxDepth: opts.depth,
	}); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Wrote %s", res.Tree.ID())
		printFile(opts.output)
		printStats(res.Stats, res.CacheHit)
	}
	return nil
}

// openCache opens the configured tree cache, or a null cache when disabled.
// A backend that cannot be reached only disables caching.
func (c *CLI) openCache(ctx context.Context, disabled bool) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	octx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tc, err := cache.Open(octx, c.config.Cache.cacheConfig())
	if err != nil {
		loggerFromContext(ctx).Warnf("Cache disabled: %v", fmt.Errorf("%s: %w", c.config.Cache.Backend, err))
		return cache.NewNullCache()
	}
	return tc
}
