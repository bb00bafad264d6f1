package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type entry struct {
	value     decimal.Decimal
	expiresAt time.Time
}

// InMemoryBalanceCache implements BalanceCache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryBalanceCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryBalanceCache creates a cache and starts its cleanup goroutine
func NewInMemoryBalanceCache(cleanupInterval time.Duration) *InMemoryBalanceCache {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	c := &InMemoryBalanceCache{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop(cleanupInterval)

	return c
}

// Get returns an unexpired value
func (c *InMemoryBalanceCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return decimal.Zero, false, nil
	}
	return e.value, true, nil
}

// Set stores a value for ttl
func (c *InMemoryBalanceCache) Set(ctx context.Context, key string, value decimal.Decimal, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryBalanceCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryBalanceCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryBalanceCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries, expired ones included until cleanup
func (c *InMemoryBalanceCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryBalanceCache implements BalanceCache
var _ BalanceCache = (*InMemoryBalanceCache)(nil)
