package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/feedsync/pkg/scheduler"
	"github.com/umputun/feedsync/pkg/scheduler/mocks"
)

func TestScheduler_StartStop(t *testing.T) {
	var runs int32
	runner := &mocks.RefreshRunnerMock{
		RefreshAllFunc: func(ctx context.Context) ([]scheduler.RefreshResult, error) {
			atomic.AddInt32(&runs, 1)
			return []scheduler.RefreshResult{{FeedID: "f1"}, {FeedID: "f2", Err: errors.New("boom")}}, nil
		},
	}

	s := scheduler.NewScheduler(runner, 50*time.Millisecond)
	s.Start(context.Background())
	time.Sleep(130 * time.Millisecond)
	s.Stop()

	got := atomic.LoadInt32(&runs)
	assert.GreaterOrEqual(t, got, int32(2), "immediate run plus at least one tick")

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, got, atomic.LoadInt32(&runs), "no runs after stop")
}

func TestScheduler_ContextCancel(t *testing.T) {
	runner := &mocks.RefreshRunnerMock{
		RefreshAllFunc: func(ctx context.Context) ([]scheduler.RefreshResult, error) {
			return nil, errors.New("list failed")
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := scheduler.NewScheduler(runner, time.Hour)
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Len(t, runner.RefreshAllCalls(), 1)
}

func TestScheduler_RunOnce(t *testing.T) {
	runner := &mocks.RefreshRunnerMock{
		RefreshAllFunc: func(ctx context.Context) ([]scheduler.RefreshResult, error) {
			return []scheduler.RefreshResult{{FeedID: "f1"}}, nil
		},
	}
	scheduler.NewScheduler(runner, 0).RunOnce(context.Background())
	assert.Len(t, runner.RefreshAllCalls(), 1)
}
