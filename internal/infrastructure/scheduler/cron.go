package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/arnoldongithub/atlantic-anvil/internal/ports"
)

// CronScheduler triggers a job immediately and then on a cron expression.
// A trigger that fires while the previous job is still running is skipped.
type CronScheduler struct {
	spec     string
	location *time.Location
	logger   *slog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	stopped context.Context
	running sync.WaitGroup
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler for a standard five-field expression.
func NewCronScheduler(spec string, location *time.Location, logger *slog.Logger) *CronScheduler {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CronScheduler{spec: spec, location: location, logger: logger}
}

// Start runs job once right away and registers it with the cron runner.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		return nil
	}

	schedule, err := cron.ParseStandard(c.spec)
	if err != nil {
		return fmt.Errorf("parse cron expression %q: %w", c.spec, err)
	}

	logAdapter := cronLogger{logger: c.logger}
	runner := cron.New(cron.WithLocation(c.location), cron.WithLogger(logAdapter))

	// One chain instance guards both the immediate run and the scheduled ones.
	guarded := cron.NewChain(cron.Recover(logAdapter), cron.SkipIfStillRunning(logAdapter)).
		Then(cron.FuncJob(func() {
			job(time.Now().In(c.location))
		}))

	runner.Schedule(schedule, guarded)
	runner.Start()
	c.cron = runner
	c.stopped = nil

	c.logger.Info("scheduler started", "cron", c.spec, "next", schedule.Next(time.Now().In(c.location)))

	c.running.Add(1)
	go func() {
		defer c.running.Done()
		guarded.Run()
	}()

	go func() {
		<-ctx.Done()
		_ = c.Stop(context.Background())
	}()

	return nil
}

// Stop halts future triggers and waits for the running job, bounded by ctx.
// Every caller waits, including those arriving after the runner was already
// stopped by context cancellation.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	if c.cron != nil {
		c.stopped = c.cron.Stop()
		c.cron = nil
	}
	stopped := c.stopped
	c.mu.Unlock()

	if stopped == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		<-stopped.Done()
		c.running.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
