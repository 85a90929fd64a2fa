// Package cache provides the resolution response caches: a fast in-memory
// tier scoped to the process, an optional SQLite-backed persistent tier, and
// a layered composition of the two.
package cache

import (
	"sync"
	"time"

	"t3scan/internal/resolution"
)

type memoryEntry struct {
	resp      *resolution.Response
	expiresAt time.Time
}

// Memory is the in-process cache tier. Safe for concurrent readers and
// writers; writes are idempotent so racing writers are harmless.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	hits    int64
	misses  int64
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get returns the cached response if present and fresh.
func (m *Memory) Get(req *resolution.Request) (*resolution.Response, bool) {
	key := req.CacheKey()

	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		m.miss()
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// refreshed the entry meanwhile.
		if cur, ok := m.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		m.miss()
		return nil, false
	}

	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
	return entry.resp.Clone(), true
}

func (m *Memory) miss() {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}

// Put stores a cache-eligible response under the request's key.
func (m *Memory) Put(req *resolution.Request, resp *resolution.Response) {
	if !resp.CacheEligible() {
		return
	}
	ttl := req.CacheOptions().TTL
	if ttl <= 0 {
		ttl = resolution.DefaultCacheTTL
	}

	m.mu.Lock()
	m.entries[req.CacheKey()] = memoryEntry{
		resp:      resp.Clone(),
		expiresAt: time.Now().Add(ttl),
	}
	m.mu.Unlock()
}

// Stats returns the tier's counters.
func (m *Memory) Stats() resolution.CacheStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return resolution.CacheStats{
		Hits:    m.hits,
		Misses:  m.misses,
		Entries: int64(len(m.entries)),
	}
}

// Clear drops every entry.
func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
}
