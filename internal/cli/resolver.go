package cli

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/deps/javascript"
	"github.com/matzehuels/deptree/pkg/httputil"
	"github.com/matzehuels/deptree/pkg/integrations/npm"
)

// resolverFlags are the registry and limit flags shared by resolve and serve.
type resolverFlags struct {
	registry      string
	maxConcurrent int
	maxDepth      int
	maxNodes      int
	retries       int
	timeout       time.Duration
}

func (f *resolverFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.registry, "registry", "", "npm-compatible registry URL")
	flags.IntVar(&f.maxConcurrent, "max-concurrent", 0, "maximum concurrent registry requests")
	flags.IntVar(&f.maxDepth, "max-depth", 0, "maximum dependency depth")
	flags.IntVar(&f.maxNodes, "max-nodes", 0, "maximum nodes in a tree")
	flags.IntVar(&f.retries, "retries", 0, "attempts per registry request (1 = no retry)")
	flags.DurationVar(&f.timeout, "timeout", 0, "time limit for one resolution")
}

// apply fills every flag the user did not set from cfg.
func (f *resolverFlags) apply(cmd *cobra.Command, cfg Config) {
	flags := cmd.Flags()
	if !flags.Changed("registry") {
		f.registry = cfg.RegistryURL
	}
	if !flags.Changed("max-concurrent") {
		f.maxConcurrent = cfg.MaxConcurrent
	}
	if !flags.Changed("max-depth") {
		f.maxDepth = cfg.MaxDepth
	}
	if !flags.Changed("max-nodes") {
		f.maxNodes = cfg.MaxNodes
	}
	if !flags.Changed("retries") {
		f.retries = cfg.Retries
	}
	if !flags.Changed("timeout") {
		f.timeout = cfg.RequestTimeout
	}
}

// options returns the resolution bounds after defaults.
func (f *resolverFlags) options(logger *log.Logger) deps.Options {
	return deps.Options{
		MaxDepth: f.maxDepth,
		MaxNodes: f.maxNodes,
		Logger:   func(msg string, args ...any) { logger.Debugf(msg, args...) },
	}.WithDefaults()
}

// newResolver builds an npm resolver from the flags.
func (f *resolverFlags) newResolver(logger *log.Logger) *deps.Resolver {
	client := npm.NewClient(f.registry, &http.Client{Timeout: 30 * time.Second})

	var fetcher deps.Fetcher = javascript.NewFetcher(client)
	if f.retries > 1 {
		fetcher = deps.WithRetry(fetcher, httputil.Policy{
			Attempts: f.retries,
			Delay:    500 * time.Millisecond,
			MaxDelay: 5 * time.Second,
		})
	}

	return deps.NewResolver(fetcher,
		deps.WithMaxConcurrent(f.maxConcurrent),
		deps.WithOptions(f.options(logger)),
	)
}
