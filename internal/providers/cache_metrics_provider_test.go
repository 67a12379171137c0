package providers

import (
	"luckypick/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cacheViewMetrics struct {
	mockMetrics
	hits   map[string]int
	misses map[string]int
}

func newCacheViewMetrics() *cacheViewMetrics {
	return &cacheViewMetrics{hits: map[string]int{}, misses: map[string]int{}}
}

func (m *cacheViewMetrics) IncCacheHits(view string)   { m.hits[view]++ }
func (m *cacheViewMetrics) IncCacheMisses(view string) { m.misses[view]++ }

type mapCache map[string][]byte

func (c mapCache) Get(key string) ([]byte, bool) {
	v, ok := c[key]
	return v, ok
}
func (c mapCache) Set(key string, value []byte) { c[key] = value }

func TestCacheView(t *testing.T) {
	assert.Equal(t, "stats", cacheView("stats:12"))
	assert.Equal(t, "analysis", cacheView("analysis:3:12"))
	assert.Equal(t, "plain", cacheView("plain"))
}

func TestInstrumentedCache_CountsPerView(t *testing.T) {
	inner := mapCache{"stats:1": []byte(`{}`)}
	metrics := newCacheViewMetrics()
	cache := &InstrumentedCache{inner: inner, metrics: metrics}

	val, ok := cache.Get("stats:1")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{}`), val)

	_, ok = cache.Get("stats:2")
	assert.False(t, ok)
	cache.Get("frequency:2")
	cache.Get("analysis:0:2")

	assert.Equal(t, map[string]int{"stats": 1}, metrics.hits)
	assert.Equal(t, map[string]int{"stats": 1, "frequency": 1, "analysis": 1}, metrics.misses)
}

func TestInstrumentedCache_SetDelegates(t *testing.T) {
	inner := mapCache{}
	cache := &InstrumentedCache{inner: inner, metrics: newCacheViewMetrics()}

	cache.Set("saved:4", []byte(`[]`))

	val, ok := inner.Get("saved:4")
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), val)
}

func TestNewInstrumentedCacheProvider(t *testing.T) {
	logger := &cacheTestLogger{}
	metrics := newCacheViewMetrics()

	disabled := NewInstrumentedCacheProvider(&structures.Config{}, logger, metrics)
	assert.IsType(t, &noopCache{}, disabled)

	enabled := NewInstrumentedCacheProvider(&structures.Config{
		Cache: structures.CacheConfig{Enabled: true, Size: 1, TTL: time.Minute},
	}, logger, metrics)
	assert.IsType(t, &InstrumentedCache{}, enabled)

	enabled.Set("stats:1", []byte("x"))
	_, ok := enabled.Get("stats:1")
	assert.True(t, ok)
	assert.Equal(t, 1, metrics.hits["stats"])
}
