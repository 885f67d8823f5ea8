package server

import (
	"math"
	"sync"

	"github.com/bastiangx/goodname/pkg/enumerate"
	"github.com/charmbracelet/log"
)

type cacheEntry struct {
	enumerator *enumerate.Enumerator
	matches    []enumerate.Match // sorted, complete
	accessTime int64
}

// ResultCache keeps the complete ranked matches of recent descriptions so
// that repeated queries with a different limit skip the enumeration.
// The least recently used entry is evicted when the cache is full.
type ResultCache struct {
	entries     map[string]*cacheEntry
	accessCount int64
	maxEntries  int
	hits        int
	misses      int
	mu          sync.Mutex
}

// NewResultCache creates a cache holding up to maxEntries results.
// A size of zero disables caching.
func NewResultCache(maxEntries int) *ResultCache {
	return &ResultCache{
		entries:    make(map[string]*cacheEntry, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached result for key.
func (rc *ResultCache) Get(key string) (*enumerate.Enumerator, []enumerate.Match, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, ok := rc.entries[key]
	if !ok {
		rc.misses++
		return nil, nil, false
	}
	rc.hits++
	entry.accessTime = rc.nextAccessTime()
	return entry.enumerator, entry.matches, true
}

// Put stores a result, evicting the least recently used entry if needed.
func (rc *ResultCache) Put(key string, e *enumerate.Enumerator, matches []enumerate.Match) {
	if rc.maxEntries <= 0 {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if entry, ok := rc.entries[key]; ok {
		entry.enumerator, entry.matches = e, matches
		entry.accessTime = rc.nextAccessTime()
		return
	}
	if len(rc.entries) >= rc.maxEntries {
		rc.evictLRU()
	}
	rc.entries[key] = &cacheEntry{
		enumerator: e,
		matches:    matches,
		accessTime: rc.nextAccessTime(),
	}
}

// Len returns the number of cached results.
func (rc *ResultCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}

// Stats returns hit and size counters.
func (rc *ResultCache) Stats() map[string]int {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	return map[string]int{
		"cacheEntries": len(rc.entries),
		"maxEntries":   rc.maxEntries,
		"cacheHits":    rc.hits,
		"cacheMisses":  rc.misses,
	}
}

func (rc *ResultCache) nextAccessTime() int64 {
	rc.accessCount++
	return rc.accessCount
}

func (rc *ResultCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, entry := range rc.entries {
		if entry.accessTime < oldestTime {
			oldestTime = entry.accessTime
			oldestKey = key
		}
	}

	if oldestTime != math.MaxInt64 {
		delete(rc.entries, oldestKey)
		log.Debugf("Evicted %q from result cache", oldestKey)
	}
}
