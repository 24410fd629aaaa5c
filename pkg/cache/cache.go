// Package cache stores resolved dependency trees.
//
// # Overview
//
// Resolution is request-scoped: the resolver never keeps registry metadata
// between calls. What may be kept is the finished product, a serialized
// tree, so that the service and the CLI can answer a repeated question
// without crawling the registry again.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: Redis strings with native expiry (shared service cache)
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing
//
// [Open] builds a backend from a [Config].
//
// # Keys
//
// [Keyer.TreeKey] derives a key from the registry, package, version and the
// resolution limits, since a tree resolved with a smaller MaxDepth is not
// interchangeable with one resolved with a larger one.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes. ok is false on a miss or expired entry.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every entry and reports how many were removed.
	Clear(ctx context.Context) (int, error)
	// Close releases backend resources.
	Close() error
}

// TreeKeyOpts are the resolution settings that change the resulting tree.
type TreeKeyOpts struct {
	MaxDepth int `json:"max_depth"`
	MaxNodes int `json:"max_nodes"`
}

// Keyer derives cache keys.
type Keyer interface {
	TreeKey(registry, pkg, version string, opts TreeKeyOpts) string
}

// DefaultKeyer produces "tree:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TreeKey hashes every component so keys stay a fixed length regardless of
// package name or registry URL.
func (DefaultKeyer) TreeKey(registry, pkg, version string, opts TreeKeyOpts) string {
	return hashKey("tree", registry, pkg, version, opts)
}
