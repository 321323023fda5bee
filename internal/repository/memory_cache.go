package repository

import (
	"context"
	"sync"
	"time"

	"github.com/homevest/api/internal/models"
)

// memoryCache is an in-process AnalysisCache used when Redis is not
// configured. Expired entries are dropped lazily on read and whenever a
// write finds the cache over its size bound.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	result    *models.AnalysisResult
	expiresAt time.Time
}

// maxMemoryEntries bounds the in-process cache so an unattended instance
// cannot grow without limit.
const maxMemoryEntries = 1024

// NewMemoryCache creates an in-process AnalysisCache with the given TTL.
func NewMemoryCache(ttl time.Duration) AnalysisCache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *memoryCache) Get(_ context.Context, key string) (*models.AnalysisResult, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry.result, nil
}

func (c *memoryCache) Set(_ context.Context, key string, result *models.AnalysisResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= maxMemoryEntries {
		c.evictExpiredLocked()
	}
	// Still full after dropping expired entries: reset rather than grow.
	if len(c.entries) >= maxMemoryEntries {
		c.entries = make(map[string]memoryEntry)
	}

	c.entries[key] = memoryEntry{
		result:    result,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

func (c *memoryCache) evictExpiredLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
