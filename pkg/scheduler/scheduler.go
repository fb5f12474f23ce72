package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/refresh_runner.go -pkg mocks -skip-ensure -fmt goimports . RefreshRunner

// RefreshRunner refreshes all subscribed feeds
type RefreshRunner interface {
	RefreshAll(ctx context.Context) ([]RefreshResult, error)
}

// Scheduler runs periodic refresh of all feeds
type Scheduler struct {
	runner   RefreshRunner
	interval time.Duration
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

// NewScheduler creates a new scheduler instance, zero interval defaults to 30 minutes
func NewScheduler(runner RefreshRunner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &Scheduler{runner: runner, interval: interval}
}

// Start begins the scheduler, the first refresh runs immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.refreshWorker(ctx)
	lgr.Printf("[INFO] scheduler started with refresh interval %v", s.interval)
}

// Stop gracefully stops the scheduler, waiting for the running refresh to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunOnce refreshes all feeds once and reports per-feed failures
func (s *Scheduler) RunOnce(ctx context.Context) {
	results, err := s.runner.RefreshAll(ctx)
	if err != nil {
		lgr.Printf("[ERROR] refresh failed: %v", err)
		return
	}
	for _, r := range results {
		if r.Err != nil {
			lgr.Printf("[WARN] feed %s: %v", r.FeedURL, r.Err)
		}
	}
}

func (s *Scheduler) refreshWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}
