package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryCounter is an in-process Counter for tests and single-node runs.
type MemoryCounter struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Time
	clock   func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		counts:  make(map[string]int64),
		expires: make(map[string]time.Time),
		clock:   time.Now,
	}
}

// NewMemoryCounterWithClock injects the clock, for tests.
func NewMemoryCounterWithClock(clock func() time.Time) *MemoryCounter {
	c := NewMemoryCounter()
	c.clock = clock
	return c
}

func (c *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if exp, ok := c.expires[key]; ok && now.After(exp) {
		delete(c.counts, key)
		delete(c.expires, key)
	}
	if _, ok := c.counts[key]; !ok {
		c.expires[key] = now.Add(window)
	}
	c.counts[key]++
	return c.counts[key], nil
}
