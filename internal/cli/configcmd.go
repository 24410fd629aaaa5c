package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = defaultConfigPath()
			}
			fmt.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config
			printKeyValue("registry", cfg.RegistryURL)
			printKeyValue("concurrency", strconv.Itoa(cfg.MaxConcurrent))
			printKeyValue("max depth", strconv.Itoa(cfg.MaxDepth))
			printKeyValue("max nodes", strconv.Itoa(cfg.MaxNodes))
			printKeyValue("retries", strconv.Itoa(cfg.Retries))
			printKeyValue("timeout", cfg.RequestTimeout.String())
			printKeyValue("listen", cfg.Listen)
			printKeyValue("cache", cacheBackendName(cfg.Cache, false))
			printKeyValue("cache ttl", cfg.Cache.TTL.String())
			return nil
		},
	})

	return cmd
}
