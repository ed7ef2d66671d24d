// Package sched runs the optional scheduled profile refresh. The cache's
// content-aware staleness remains the primary mechanism; the scheduler only
// keeps the TTL warm on long-running sessions.
package sched

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"
)

type Service struct {
	schedule  string
	mu        sync.Mutex
	cron      *rcron.Cron
	cancel    context.CancelFunc
	OnRefresh func() error
}

func NewService(schedule string) *Service {
	return &Service{schedule: schedule}
}

// Start registers the refresh job and runs it until the context is done.
// An empty schedule is a no-op.
func (s *Service) Start(ctx context.Context) error {
	if s.schedule == "" {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.cron = rcron.New()
	s.mu.Unlock()

	_, err := s.cron.AddFunc(s.schedule, func() {
		if s.OnRefresh == nil {
			return
		}
		if err := s.OnRefresh(); err != nil {
			log.Printf("[sched] scheduled refresh failed: %v", err)
			return
		}
		log.Printf("[sched] scheduled refresh completed")
	})
	if err != nil {
		cancel()
		return fmt.Errorf("register refresh schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.Printf("[sched] refresh scheduled: %s", s.schedule)

	go func() {
		<-runCtx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Service) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	cron := s.cron
	s.cancel = nil
	s.cron = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if cron != nil {
		stopCtx := cron.Stop()
		select {
		case <-stopCtx.Done():
		case <-time.After(5 * time.Second):
			log.Printf("[sched] stop timeout waiting for running refresh")
		}
	}
}
