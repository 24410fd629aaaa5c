package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/integrations/npm"
)

// Config is the contents of config.toml. Command-line flags override it.
//
//	registry_url = "https://registry.npmjs.org"
//	max_concurrent_resolutions = 100
//	request_timeout = "2m"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
type Config struct {
	RegistryURL    string        `toml:"registry_url"`
	MaxConcurrent  int           `toml:"max_concurrent_resolutions"`
	MaxDepth       int           `toml:"max_depth"`
	MaxNodes       int           `toml:"max_nodes"`
	Retries        int           `toml:"retries"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	Listen         string        `toml:"listen"`
	Cache          CacheConfig   `toml:"cache"`
}

// CacheConfig selects the tree cache backend.
type CacheConfig struct {
	Backend         string        `toml:"backend"`
	TTL             time.Duration `toml:"ttl"`
	Dir             string        `toml:"dir"`
	RedisAddr       string        `toml:"redis_addr"`
	RedisPassword   string        `toml:"redis_password"`
	RedisDB         int           `toml:"redis_db"`
	RedisPrefix     string        `toml:"redis_prefix"`
	MongoURI        string        `toml:"mongo_uri"`
	MongoDatabase   string        `toml:"mongo_database"`
	MongoCollection string        `toml:"mongo_collection"`
}

func defaultConfig() Config {
	dir, _ := cacheDir()
	return Config{
		RegistryURL:    npm.DefaultRegistryURL,
		MaxConcurrent:  deps.DefaultMaxConcurrent,
		MaxDepth:       deps.DefaultMaxDepth,
		MaxNodes:       deps.DefaultMaxNodes,
		Retries:        1,
		RequestTimeout: 2 * time.Minute,
		Listen:         ":8080",
		Cache: CacheConfig{
			Backend: cache.BackendNone,
			TTL:     24 * time.Hour,
			Dir:     dir,
		},
	}
}

// defaultConfigPath is where the config file is looked up when --config is
// not given.
func defaultConfigPath() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// loadConfig reads path over the defaults. An empty path reads the default
// location, where a missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// cacheConfig converts the file settings to a [cache.Config].
func (c CacheConfig) cacheConfig() cache.Config {
	return cache.Config{
		Backend: c.Backend,
		Dir:     c.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		},
		Mongo: cache.MongoConfig{
			URI:        c.MongoURI,
			Database:   c.MongoDatabase,
			Collection: c.MongoCollection,
		},
	}
}
