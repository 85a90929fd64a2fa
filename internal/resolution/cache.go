package resolution

// Cache memoizes responses keyed by a request's deterministic cache key.
// Implementations must be safe for concurrent readers; writes are idempotent
// (same key, equivalent value), so racing writers are harmless.
type Cache interface {
	// Get returns the cached response for the request, if present and fresh.
	Get(req *Request) (*Response, bool)
	// Put stores a response. Implementations must refuse responses that are
	// not cache-eligible.
	Put(req *Request, resp *Response)
	// Stats returns observability counters. Not required for correctness.
	Stats() CacheStats
	// Clear drops every entry.
	Clear()
}

// CacheStats exposes hit/miss counters for observability.
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int64 `json:"entries"`
}

// HitRatio returns hits / (hits + misses), or 0 when nothing was looked up.
func (s CacheStats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// nopCache is used when caching is disabled entirely.
type nopCache struct{}

// NopCache returns a cache that stores nothing.
func NopCache() Cache { return nopCache{} }

func (nopCache) Get(*Request) (*Response, bool) { return nil, false }
func (nopCache) Put(*Request, *Response)        {}
func (nopCache) Stats() CacheStats              { return CacheStats{} }
func (nopCache) Clear()                         {}
