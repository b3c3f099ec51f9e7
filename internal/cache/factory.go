package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ProviderConfig holds the configuration needed to create a cache instance.
type ProviderConfig struct {
	// Size is the maximum number of entries for LRU caches.
	Size int

	// TTL is the time-to-live for cache entries.
	TTL time.Duration

	// OnEvict is called when an entry is evicted. Not all providers support this.
	OnEvict EvictCallback

	// Logger receives error reports from cache operations. If nil, errors are
	// silently ignored.
	Logger Logger

	// RedisAddress is the Redis/Valkey server address (e.g., "localhost:6379").
	RedisAddress string

	// RedisPassword is the password for the Redis/Valkey server.
	RedisPassword string

	// RedisDB is the Redis/Valkey database number.
	RedisDB int

	// Group is an optional label value used to namespace Prometheus metrics.
	// When non-empty the cache is automatically wrapped with instrumentation.
	Group string
}

// Provider is a constructor function that creates a Cache from config.
type Provider func(cfg ProviderConfig) (Cache, error)

var registry = struct {
	sync.RWMutex
	providers map[string]Provider
}{providers: make(map[string]Provider)}

// Register registers a cache provider under the given name.
// It panics if the name is already registered or the provider is nil.
func Register(name string, p Provider) {
	registry.Lock()
	defer registry.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := registry.providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	registry.providers[name] = p
}

// New creates a Cache using the named provider. When cfg.Group is non-empty
// the result is wrapped with metric instrumentation: hits, misses, and
// evictions carry a "cache" label equal to Group, and a lazy entries
// collector queries Len() at scrape time.
func New(name string, cfg ProviderConfig) (Cache, error) {
	registry.RLock()
	p, ok := registry.providers[name]
	registry.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}
	if cfg.Group == "" {
		return p(cfg)
	}
	return newInstrumented(p, cfg)
}

// newInstrumented builds the cache with eviction counting hooked in before
// construction, then wraps it with hit/miss instrumentation.
func newInstrumented(p Provider, cfg ProviderConfig) (Cache, error) {
	group := cfg.Group
	original := cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if original != nil {
			original(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}
	return newInstrumentedCache(inner, group), nil
}

// RegisteredProviders returns a sorted list of registered provider names.
func RegisteredProviders() []string {
	registry.RLock()
	defer registry.RUnlock()

	names := make([]string, 0, len(registry.providers))
	for name := range registry.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
