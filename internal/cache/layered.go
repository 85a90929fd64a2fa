package cache

import (
	"t3scan/internal/resolution"
)

// Layered composes the fast in-memory tier with an optional longer-lived
// tier. Hits in the slow tier are promoted into the fast one.
type Layered struct {
	fast resolution.Cache
	slow resolution.Cache
}

// NewLayered creates a layered cache. slow may be nil, in which case only
// the fast tier is consulted.
func NewLayered(fast, slow resolution.Cache) *Layered {
	if fast == nil {
		fast = NewMemory()
	}
	return &Layered{fast: fast, slow: slow}
}

// Get checks the fast tier, then the slow tier.
func (l *Layered) Get(req *resolution.Request) (*resolution.Response, bool) {
	if resp, ok := l.fast.Get(req); ok {
		return resp, true
	}
	if l.slow == nil {
		return nil, false
	}
	resp, ok := l.slow.Get(req)
	if !ok {
		return nil, false
	}
	l.fast.Put(req, resp)
	return resp, true
}

// Put stores the response in every tier.
func (l *Layered) Put(req *resolution.Request, resp *resolution.Response) {
	l.fast.Put(req, resp)
	if l.slow != nil {
		l.slow.Put(req, resp)
	}
}

// Stats sums the hit and miss counters across tiers. Entries come from the
// slow tier alone when one is configured: every Put writes both tiers, so the
// slow tier holds the superset and summing would count shared keys twice.
func (l *Layered) Stats() resolution.CacheStats {
	stats := l.fast.Stats()
	if l.slow != nil {
		slow := l.slow.Stats()
		stats.Hits += slow.Hits
		stats.Misses += slow.Misses
		stats.Entries = slow.Entries
	}
	return stats
}

// Clear drops every entry in every tier.
func (l *Layered) Clear() {
	l.fast.Clear()
	if l.slow != nil {
		l.slow.Clear()
	}
}
