package source

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedTable is a parsed object together with its load time.
type cachedTable struct {
	table *Table
	built time.Time
}

// Cache holds parsed storage objects so repeated comparisons of the same
// object do not download it again.
type Cache struct {
	// TTL is how long a parsed object stays valid. Zero disables caching.
	TTL time.Duration

	mu     sync.RWMutex
	tables map[string]*cachedTable
	sf     singleflight.Group
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{TTL: ttl, tables: make(map[string]*cachedTable)}
}

func (c *Cache) expired(t *cachedTable) bool {
	if c.TTL <= 0 {
		return true
	}
	return time.Since(t.built) > c.TTL
}

// GetOrLoad returns the table stored under key, or calls load when it is
// missing or expired. Concurrent callers for the same key share one load.
func (c *Cache) GetOrLoad(ctx context.Context, key string, load func(context.Context) (*Table, error)) (*Table, error) {
	if c == nil || c.TTL <= 0 {
		return load(ctx)
	}

	c.mu.RLock()
	cached, ok := c.tables[key]
	c.mu.RUnlock()
	if ok && !c.expired(cached) {
		return cached.table, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		cached, ok := c.tables[key]
		c.mu.RUnlock()
		if ok && !c.expired(cached) {
			return cached.table, nil
		}

		table, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.tables[key] = &cachedTable{table: table, built: time.Now()}
		c.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Table), nil
}

// Invalidate drops the entry stored under key.
func (c *Cache) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.tables, key)
	c.mu.Unlock()
}

// Len returns the number of cached entries, expired ones included.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}
