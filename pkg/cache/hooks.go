package cache

import (
	"context"
	"time"

	"github.com/matzehuels/deptree/pkg/observability"
)

type hookedCache struct {
	Cache
	keyType string
}

// WithHooks reports every Get and Set on c to [observability.Cache] under
// keyType.
func WithHooks(c Cache, keyType string) Cache {
	return &hookedCache{Cache: c, keyType: keyType}
}

func (c *hookedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, ok, err
}

func (c *hookedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	}
	return err
}
