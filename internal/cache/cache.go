package cache

import "encoding/json"

// EvictCallback is called when an entry is evicted from the cache.
// Not every provider supports eviction callbacks (Redis relies on
// server-side TTL expiry).
type EvictCallback func(key string, value []byte)

// Logger receives error reports from cache operations. Kept as a tiny local
// interface so the cache layer does not depend on the logging package.
type Logger interface {
	Error(msg string, err error)
}

// Cache is a key-value byte cache with TTL semantics. It backs the TMDB
// detail/find cache and the IntroDB timestamp cache. Values are deterministic
// for a given key, so concurrent duplicate writes are harmless
// (last-write-wins).
type Cache interface {
	// Get retrieves a value by key. Returns the value and true on a hit.
	Get(key string) ([]byte, bool)

	// Set stores a value under key, overwriting any existing entry.
	Set(key string, value []byte)

	// Contains reports whether key exists without affecting LRU ordering.
	Contains(key string) bool

	// Len returns the number of entries currently in the cache.
	Len() int

	// Close releases resources held by the cache (network connections).
	// In-memory caches treat this as a no-op.
	Close() error
}

// GetJSON loads the JSON document stored under key into out, reporting a
// hit. A nil cache and a corrupt entry both behave like a miss; corrupt
// entries get overwritten by the next SetJSON.
func GetJSON(c Cache, key string, out any) bool {
	if c == nil {
		return false
	}
	data, ok := c.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// SetJSON stores value under key as a JSON document. A nil cache and an
// unmarshalable value are both ignored; callers treat caching as best
// effort.
func SetJSON(c Cache, key string, value any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.Set(key, data)
}
