package common

import "time"

// NoExpiration pins an entry in cache until it is explicitly deleted. The
// value matches go-cache's NoExpiration sentinel; the Redis implementation
// normalizes it to Redis's own no-TTL convention. Duration 0 means the
// implementation's default TTL, which differs between backends, so durable
// entries must use this constant instead.
const NoExpiration time.Duration = -1

// CacheInterface defines the contract for cache implementations.
//
// The favorites synchronizer uses this as its durable local fallback when the
// remote store is unreachable, so implementations must tolerate arbitrary JSON
// string payloads.
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
