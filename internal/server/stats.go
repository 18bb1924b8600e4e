package server

import (
	"sync"
	"time"
)

// usageStats counts requests per operation for the lifetime of the process.
// Deliberately not persisted; the stats endpoint documents that.
type usageStats struct {
	mu      sync.Mutex
	counts  map[string]int
	started time.Time
}

func newUsageStats() *usageStats {
	return &usageStats{
		counts:  make(map[string]int),
		started: time.Now().UTC(),
	}
}

func (u *usageStats) record(operation string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.counts[operation]++
}

func (u *usageStats) snapshot() map[string]any {
	u.mu.Lock()
	defer u.mu.Unlock()

	counts := make(map[string]int, len(u.counts))
	total := 0
	for op, n := range u.counts {
		counts[op] = n
		total += n
	}

	return map[string]any{
		"since":          u.started,
		"total_requests": total,
		"by_operation":   counts,
	}
}
