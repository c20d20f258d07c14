// internal/cache/memory.go
// In-memory Cache used by tests and single-instance deployments that
// run without Redis.
package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	entry   Entry
	expires time.Time
}

// Memory is a process-local Cache with TTL expiry.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string) (*Entry, bool) {
	m.mu.RLock()
	me, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().After(me.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	e := me.entry
	e.Body = append([]byte(nil), me.entry.Body...)
	return &e, true
}

func (m *Memory) Set(ctx context.Context, key string, e *Entry, ttl time.Duration) {
	if e == nil || ttl <= 0 {
		return
	}
	stored := *e
	stored.Body = append([]byte(nil), e.Body...)
	m.mu.Lock()
	m.entries[key] = memoryEntry{entry: stored, expires: m.now().Add(ttl)}
	m.mu.Unlock()
}

func (m *Memory) Close() error { return nil }

// SetClock overrides the time source for expiry tests.
func (m *Memory) SetClock(now func() time.Time) { m.now = now }
