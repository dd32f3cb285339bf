package dataset

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

// CacheStats tracks cache performance counters.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
}

// Cache keeps loaded datasets keyed by their source identity so repeated
// analysis runs within a session skip the fetch. A changed source identity
// is a miss by construction, which is the required invalidation behavior.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*models.CleanedDataset
	stats   CacheStats
	logger  *logrus.Logger
}

// NewCache creates an empty dataset cache.
func NewCache(logger *logrus.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*models.CleanedDataset),
		logger:  logger,
	}
}

// Get returns the cached dataset for a source identity, if present.
func (c *Cache) Get(source string) (*models.CleanedDataset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ds, ok := c.entries[source]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return ds, true
}

// Set stores a dataset under its source identity.
func (c *Cache) Set(source string, ds *models.CleanedDataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[source] = ds
	c.stats.Sets++
	c.logger.WithFields(logrus.Fields{
		"source":  source,
		"records": len(ds.Records),
	}).Debug("Dataset cached")
}

// Stats returns a copy of the current cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// LogStats logs the cache hit rate.
func (c *Cache) LogStats() {
	stats := c.Stats()
	total := stats.Hits + stats.Misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(stats.Hits) / float64(total) * 100
	}
	c.logger.WithFields(logrus.Fields{
		"hits":     stats.Hits,
		"misses":   stats.Misses,
		"sets":     stats.Sets,
		"hit_rate": hitRate,
	}).Info("Dataset cache stats")
}
