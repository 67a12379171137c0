package providers

import (
	"luckypick/internal/structures"
	"strings"
)

// InstrumentedCache counts hits and misses per view. Keys look like
// "<view>:<revision>" or "<view>:<arg>:<revision>".
type InstrumentedCache struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func cacheView(key string) string {
	view, _, _ := strings.Cut(key, ":")
	return view
}

func (c *InstrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits(cacheView(key))
	} else {
		c.metrics.IncCacheMisses(cacheView(key))
	}
	return val, ok
}

func (c *InstrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

// NewInstrumentedCacheProvider leaves a disabled cache unwrapped so it reports no misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled {
		return inner
	}
	return &InstrumentedCache{
		inner:   inner,
		metrics: metrics,
	}
}
