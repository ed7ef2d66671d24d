package insights

import (
	"encoding/json"
	"log"
	"time"

	"github.com/tetherhq/tether/internal/storage"
)

// DefaultCacheTTL bounds how long a cached summary stays valid even when no
// new logs arrive; window-relative facets drift as "now" moves forward.
const DefaultCacheTTL = 24 * time.Hour

// refreshGrowthMin is how many new logs (daily + saved) since the cached
// snapshot force a recomputation before the TTL lapses.
const refreshGrowthMin = 3

const cacheKey = "tether.profile.v1"

// cacheEntry is the single serialized slot. It is always written wholesale,
// never patched.
type cacheEntry struct {
	Summary    ProfileSummary `json:"summary"`
	Timeline   []TimelineItem `json:"timeline"`
	CachedAt   time.Time      `json:"cachedAt"`
	ValidUntil time.Time      `json:"validUntil"`
}

// Cache holds the last computed summary behind a key-value store. Storage
// failures degrade to cache misses; the cache is an optimization, never a
// correctness dependency.
type Cache struct {
	kv  storage.KV
	ttl time.Duration
	now func() time.Time
}

func NewCache(kv storage.KV, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{kv: kv, ttl: ttl, now: time.Now}
}

// Read returns the cached summary and timeline, or ok=false when the slot is
// absent, expired, or unreadable.
func (c *Cache) Read() (ProfileSummary, []TimelineItem, bool) {
	entry, ok := c.load()
	if !ok {
		return ProfileSummary{}, nil, false
	}
	return entry.Summary, entry.Timeline, true
}

// Write overwrites the slot wholesale, stamping cachedAt and validUntil.
func (c *Cache) Write(summary ProfileSummary, timeline []TimelineItem) {
	now := c.now()
	entry := cacheEntry{
		Summary:    summary,
		Timeline:   timeline,
		CachedAt:   now,
		ValidUntil: now.Add(c.ttl),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("[cache] marshal profile: %v", err)
		return
	}
	if err := c.kv.Set(cacheKey, string(data)); err != nil {
		log.Printf("[cache] write profile: %v", err)
	}
}

// Invalidate force-clears the slot regardless of expiry.
func (c *Cache) Invalidate() {
	if err := c.kv.Remove(cacheKey); err != nil {
		log.Printf("[cache] invalidate profile: %v", err)
	}
}

// ShouldRefresh reports whether a recomputation is due: the slot is absent
// or expired, or the log count across active connections has grown enough
// since the cached evidence snapshot. Staleness is time-bounded and
// content-bounded, whichever triggers first.
func (c *Cache) ShouldRefresh(current EvidenceCounts) bool {
	entry, ok := c.load()
	if !ok {
		return true
	}
	return current.Total()-entry.Summary.Evidence.Total() >= refreshGrowthMin
}

func (c *Cache) load() (*cacheEntry, bool) {
	raw, ok, err := c.kv.Get(cacheKey)
	if err != nil {
		log.Printf("[cache] read profile: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Printf("[cache] decode profile: %v", err)
		return nil, false
	}
	if c.now().After(entry.ValidUntil) {
		return nil, false
	}
	return &entry, true
}
