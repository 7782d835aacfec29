package cache

import (
	"context"
	"time"
)

// Cache is the derived-value cache port. It is an optimization layer only:
// callers must be correct when every method fails.
type Cache interface {
	// Get reads key into dest.
	// found=false with nil error is a miss; a non-nil error is a cache fault
	// (connection, timeout, decode) and callers fall back to the store.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
