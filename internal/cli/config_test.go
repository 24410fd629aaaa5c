package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/integrations/npm"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.RegistryURL != npm.DefaultRegistryURL {
		t.Errorf("RegistryURL = %q", cfg.RegistryURL)
	}
	if cfg.MaxConcurrent != deps.DefaultMaxConcurrent {
		t.Errorf("MaxConcurrent = %d, want %d", cfg.MaxConcurrent, deps.DefaultMaxConcurrent)
	}
	if cfg.Cache.Backend != cache.BackendNone {
		t.Errorf("Cache.Backend = %q, want none (trees are not kept unless configured)", cfg.Cache.Backend)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
registry_url = "http://registry.internal"
max_concurrent_resolutions = 16
max_depth = 20
request_timeout = "45s"

[cache]
backend = "redis"
ttl = "10m"
redis_addr = "redis:6379"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.RegistryURL != "http://registry.internal" {
		t.Errorf("RegistryURL = %q", cfg.RegistryURL)
	}
	if cfg.MaxConcurrent != 16 || cfg.MaxDepth != 20 {
		t.Errorf("limits = %d/%d, want 16/20", cfg.MaxConcurrent, cfg.MaxDepth)
	}
	if cfg.MaxNodes != deps.DefaultMaxNodes {
		t.Errorf("unset MaxNodes = %d, want default", cfg.MaxNodes)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTL != 10*time.Minute || cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}

	cc := cfg.Cache.cacheConfig()
	if cc.Backend != "redis" || cc.Redis.Addr != "redis:6379" {
		t.Errorf("cacheConfig() = %+v", cc)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{"explicit missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }, "nope.toml"},
		{"unknown key", func(t *testing.T) string { return writeConfig(t, "max_conccurent = 5\n") }, "unknown keys: max_conccurent"},
		{"bad syntax", func(t *testing.T) string { return writeConfig(t, "registry_url = \n") }, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path(t))
			if err == nil {
				t.Fatal("loadConfig() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestResolverFlagsApply(t *testing.T) {
	var f resolverFlags
	cmd := &cobra.Command{Use: "x"}
	f.register(cmd)
	if err := cmd.Flags().Parse([]string{"--max-depth", "7"}); err != nil {
		t.Fatal(err)
	}

	cfg := defaultConfig()
	cfg.MaxDepth = 30
	cfg.MaxNodes = 500
	f.apply(cmd, cfg)

	if f.maxDepth != 7 {
		t.Errorf("maxDepth = %d, flag should win over config", f.maxDepth)
	}
	if f.maxNodes != 500 {
		t.Errorf("maxNodes = %d, config should fill unset flags", f.maxNodes)
	}
	if f.registry != npm.DefaultRegistryURL {
		t.Errorf("registry = %q", f.registry)
	}
}
