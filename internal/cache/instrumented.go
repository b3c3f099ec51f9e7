package cache

// instrumentedCache wraps a Cache and records Prometheus metrics for hits,
// misses, and current entry count under the given group label. Metric
// tracking lives in the cache layer so callers never manage it.
type instrumentedCache struct {
	inner     Cache
	group     string
	stopGauge func()
}

func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	return &instrumentedCache{
		inner:     inner,
		group:     group,
		stopGauge: registerEntriesCollector(group, inner.Len),
	}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return val, ok
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *instrumentedCache) Contains(key string) bool {
	return c.inner.Contains(key)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

// Close unregisters the entries collector and closes the underlying cache.
func (c *instrumentedCache) Close() error {
	c.stopGauge()
	return c.inner.Close()
}
