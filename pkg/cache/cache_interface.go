package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer, so the Redis implementation can
// be swapped for an in-memory one in tests.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// Returns found=false on a miss, leaving dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded unless it is already a string or []byte) with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// Incr atomically adds one to the integer at key, creating it at 1.
	Incr(ctx context.Context, key string) (int64, error)

	Ping(ctx context.Context) error
}
