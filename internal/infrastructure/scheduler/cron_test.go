package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestCronSchedulerRunsImmediately(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("*/30 * * * *", time.UTC, nil)
	fired := make(chan time.Time, 1)

	if err := s.Start(context.Background(), func(ts time.Time) { fired <- ts }); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer s.Stop(context.Background())

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("job was not triggered on start")
	}
}

func TestCronSchedulerStopWaitsForRunningJob(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("@every 1h", nil, nil)
	started := make(chan struct{})
	var finished atomic.Bool

	err := s.Start(context.Background(), func(time.Time) {
		close(started)
		time.Sleep(100 * time.Millisecond)
		finished.Store(true)
	})
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	<-started
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if !finished.Load() {
		t.Fatalf("Stop returned before the running job completed")
	}

	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("second Stop should be a no-op: %v", err)
	}
}

func TestCronSchedulerStopAfterCancelWaitsForRunningJob(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("@every 1h", time.UTC, nil)
	started := make(chan struct{})
	var finished atomic.Bool

	ctx, cancel := context.WithCancel(context.Background())
	err := s.Start(ctx, func(time.Time) {
		close(started)
		time.Sleep(200 * time.Millisecond)
		finished.Store(true)
	})
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	<-started
	cancel()
	// Let the cancellation watcher take the runner first.
	time.Sleep(20 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if !finished.Load() {
		t.Fatalf("Stop returned before the running job completed")
	}
}

func TestCronSchedulerStopHonoursDeadline(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("@every 1h", time.UTC, nil)
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	if err := s.Start(context.Background(), func(time.Time) {
		close(started)
		<-release
	}); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := s.Stop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestCronSchedulerRejectsBadExpression(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("every half hour", time.UTC, nil)
	if err := s.Start(context.Background(), func(time.Time) {}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestCronSchedulerNilJob(t *testing.T) {
	t.Parallel()

	s := NewCronScheduler("*/30 * * * *", time.UTC, nil)
	if err := s.Start(context.Background(), nil); err != nil {
		t.Fatalf("nil job should be ignored: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop on idle scheduler: %v", err)
	}
}
