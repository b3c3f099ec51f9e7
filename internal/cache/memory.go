package cache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

// memoryCache wraps hashicorp/golang-lru/v2/expirable to implement the Cache
// interface. Entries expire after the configured TTL and the least-recently
// used entry is evicted once Size is exceeded.
type memoryCache struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryCache(cfg ProviderConfig) (Cache, error) {
	// A nil EvictCallback converts to a nil lru callback, which the LRU
	// treats as no callback at all.
	onEvict := lru.EvictCallback[string, []byte](cfg.OnEvict)
	return &memoryCache{inner: lru.NewLRU(cfg.Size, onEvict, cfg.TTL)}, nil
}

func (m *memoryCache) Get(key string) ([]byte, bool) { return m.inner.Get(key) }
func (m *memoryCache) Set(key string, value []byte)  { m.inner.Add(key, value) }
func (m *memoryCache) Contains(key string) bool      { return m.inner.Contains(key) }
func (m *memoryCache) Len() int                      { return m.inner.Len() }
func (m *memoryCache) Close() error                  { return nil }
