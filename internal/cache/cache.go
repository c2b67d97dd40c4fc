package cache

import "time"

// Cache is a key/value store with per-entry expiry, used to memoize
// derived analytics such as category statistics.
type Cache interface {
	// Get retrieves a value from the cache. The second return value
	// reports whether the key was present and unexpired.
	Get(key string) (string, bool)

	// Set stores a value in the cache with the given time-to-live
	Set(key string, value string, ttl time.Duration)

	// Delete removes a key from the cache
	Delete(key string)

	// Size returns the current number of items in the cache
	Size() int
}
