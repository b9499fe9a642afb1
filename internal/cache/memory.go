package cache

import (
	"context"
	"sync"
	"time"

	"github.com/emprestai/emprestai-api/internal/calculations"
)

type memoryEntry struct {
	sim       calculations.LoanSimulation
	expiresAt time.Time
}

// MemoryCache используется, когда Redis недоступен
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*calculations.LoanSimulation, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if c.ttl > 0 && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}

	sim := entry.sim
	sim.AmortizationSchedule = append([]calculations.AmortizationEntry(nil), entry.sim.AmortizationSchedule...)
	return &sim, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, sim *calculations.LoanSimulation) error {
	stored := *sim
	stored.AmortizationSchedule = append([]calculations.AmortizationEntry(nil), sim.AmortizationSchedule...)

	c.mu.Lock()
	c.entries[key] = memoryEntry{sim: stored, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}
