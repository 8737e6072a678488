package priceseries

import (
	"sync"

	"go-pricechart/pkg/models"
)

// Cache holds every generated series for its lifetime. There is no eviction;
// a (pair, period) entry is created at most once.
type Cache struct {
	mu      sync.Mutex
	entries map[string]map[TimePeriod]*models.PairSeries
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]map[TimePeriod]*models.PairSeries)}
}

func (c *Cache) Get(pairKey string, period TimePeriod) (*models.PairSeries, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[pairKey][period]
	return s, ok
}

// GetOrCreate returns the stored series, or calls create and stores its result.
// The whole check-create-store sequence runs under the cache lock, so
// concurrent misses on one key observe a single series. created reports
// whether this call generated it.
func (c *Cache) GetOrCreate(pairKey string, period TimePeriod, create func() *models.PairSeries) (series *models.PairSeries, created bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byPeriod, ok := c.entries[pairKey]
	if !ok {
		byPeriod = make(map[TimePeriod]*models.PairSeries)
		c.entries[pairKey] = byPeriod
	}
	if s, ok := byPeriod[period]; ok {
		return s, false
	}
	s := create()
	byPeriod[period] = s
	return s, true
}

// Len counts cached series across all pairs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, byPeriod := range c.entries {
		n += len(byPeriod)
	}
	return n
}

// PairCount counts distinct pair keys seen.
func (c *Cache) PairCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
