package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string // none, file, redis or mongo ("" = none)
	Dir     string // file backend directory
	Redis   RedisConfig
	Mongo   MongoConfig
}

// Open returns the configured backend, wrapped so that hits, misses and
// writes are reported to the observability cache hooks.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		c, err = NewFileCache(cfg.Dir)
	case BackendRedis:
		c, err = NewRedisCache(ctx, cfg.Redis)
	case BackendMongo:
		c, err = NewMongoCache(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (available: none, file, redis, mongo)", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return WithHooks(c, "tree"), nil
}
