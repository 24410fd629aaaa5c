package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the resolved tree cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached tree from the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config.Cache
			if cfg.Backend == "" || cfg.Backend == cache.BackendNone {
				printInfo("No cache backend configured")
				return nil
			}
			if cfg.Backend == cache.BackendFile {
				if _, err := os.Stat(cfg.Dir); os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
			}

			count, err := clearCache(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached trees", count)
			switch cfg.Backend {
			case cache.BackendFile:
				printDetail("Directory: %s", cfg.Dir)
			case cache.BackendRedis:
				printDetail("Redis: %s", cfg.RedisAddr)
			case cache.BackendMongo:
				printDetail("MongoDB: %s", cfg.MongoDatabase)
			}
			return nil
		},
	}
}

func clearCache(ctx context.Context, cfg CacheConfig) (int, error) {
	tc, err := cache.Open(ctx, cfg.cacheConfig())
	if err != nil {
		return 0, fmt.Errorf("open cache: %w", err)
	}
	defer tc.Close()
	return tc.Clear(ctx)
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.config.Cache.Dir == "" {
				return fmt.Errorf("no cache directory configured")
			}
			fmt.Println(c.config.Cache.Dir)
			return nil
		},
	}
}
