package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	resolverFlags

	listen  string
	noCache bool
}

// serveCommand creates the HTTP service command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dependency trees over HTTP",
		Long: `Serve dependency trees over HTTP.

Routes:
  GET /package/{name}/{version}
  GET /package/{scope}/{name}/{version}
  GET /healthz

A package version that depends on itself through its dependencies (for
example es5-ext and es6-iterator) answers 422 CYCLE_DETECTED.

Trees are cached only when a cache backend is configured.

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts.apply(cmd, c.config)
			if !cmd.Flags().Changed("listen") {
				opts.listen = c.config.Listen
			}

			logger := loggerFromContext(ctx)
			runner := c.newRunner(ctx, &opts.resolverFlags, opts.noCache)
			defer runner.Close()

			srv := server.New(runner,
				server.WithLogger(logger),
				server.WithRequestTimeout(opts.timeout),
			)

			logger.Infof("Resolving against %s (%d concurrent fetches, cache: %s)",
				opts.registry, opts.maxConcurrent, cacheBackendName(c.config.Cache, opts.noCache))
			start := time.Now()
			err := srv.ListenAndServe(ctx, opts.listen)
			logger.Infof("Stopped after %s", time.Since(start).Round(time.Second))
			return err
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.listen, "listen", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not cache resolved trees")

	return cmd
}

func cacheBackendName(cfg CacheConfig, disabled bool) string {
	if disabled || cfg.Backend == "" {
		return "none"
	}
	return cfg.Backend
}
