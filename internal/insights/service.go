package insights

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tetherhq/tether/internal/journal"
	"github.com/tetherhq/tether/internal/storage"
)

// DefaultTimelineLimit bounds the explanatory timeline.
const DefaultTimelineLimit = 10

// ConnectionSource supplies the connection history. The service only reads
// it; writes happen elsewhere.
type ConnectionSource interface {
	ListConnections() ([]journal.Connection, error)
}

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	WindowDays    int
	CacheTTL      time.Duration
	TimelineLimit int
	Now           func() time.Time
}

// Service is the externally callable surface: summary, timeline, and forced
// refresh, all cache-first over one shared slot.
type Service struct {
	source        ConnectionSource
	cache         *Cache
	windowDays    int
	timelineLimit int
	now           func() time.Time
}

func NewService(source ConnectionSource, kv storage.KV, opts Options) *Service {
	if opts.WindowDays <= 0 {
		opts.WindowDays = defaultWindowDays
	}
	if opts.TimelineLimit <= 0 {
		opts.TimelineLimit = DefaultTimelineLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cache := NewCache(kv, opts.CacheTTL)
	cache.now = opts.Now

	return &Service{
		source:        source,
		cache:         cache,
		windowDays:    opts.WindowDays,
		timelineLimit: opts.TimelineLimit,
		now:           opts.Now,
	}
}

// GetSummary returns the cached summary when it is still fresh, otherwise
// recomputes and writes through the cache.
func (s *Service) GetSummary(input ProfileInput) (ProfileSummary, error) {
	if err := validateInput(input); err != nil {
		return ProfileSummary{}, err
	}

	conns, err := s.source.ListConnections()
	if err != nil {
		return ProfileSummary{}, fmt.Errorf("list connections: %w", err)
	}

	ds := Extract(conns, s.now(), s.windowDays)
	if !s.cache.ShouldRefresh(ds.Counts()) {
		if summary, _, ok := s.cache.Read(); ok {
			return summary, nil
		}
	}

	summary, timeline := s.compute(ds, input)
	s.cache.Write(summary, timeline)
	return summary, nil
}

// GetTimeline returns the cached timeline when fresh, otherwise recomputes
// the whole slot and returns the new timeline.
func (s *Service) GetTimeline(input ProfileInput) ([]TimelineItem, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	conns, err := s.source.ListConnections()
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}

	ds := Extract(conns, s.now(), s.windowDays)
	if !s.cache.ShouldRefresh(ds.Counts()) {
		if _, timeline, ok := s.cache.Read(); ok {
			return timeline, nil
		}
	}

	summary, timeline := s.compute(ds, input)
	s.cache.Write(summary, timeline)
	return timeline, nil
}

// Refresh unconditionally invalidates the cache, recomputes, and writes the
// new slot. This is the only operation allowed to bypass a valid cache.
func (s *Service) Refresh(input ProfileInput) (ProfileSummary, error) {
	if err := validateInput(input); err != nil {
		return ProfileSummary{}, err
	}

	conns, err := s.source.ListConnections()
	if err != nil {
		return ProfileSummary{}, fmt.Errorf("list connections: %w", err)
	}

	s.cache.Invalidate()
	summary, timeline := s.compute(Extract(conns, s.now(), s.windowDays), input)
	s.cache.Write(summary, timeline)
	log.Printf("[insights] profile refreshed: %d connections, %d logs",
		summary.Evidence.ActiveConnections, summary.Evidence.Total())
	return summary, nil
}

func (s *Service) compute(ds *Dataset, input ProfileInput) (ProfileSummary, []TimelineItem) {
	summary := compileDataset(ds, input)
	timeline := BuildTimeline(ds, input.Reflections, s.timelineLimit, ds.Now)
	return summary, timeline
}

func validateInput(input ProfileInput) error {
	if strings.TrimSpace(input.Identity.Name) == "" {
		return fmt.Errorf("profile input: identity name is required")
	}
	return nil
}
