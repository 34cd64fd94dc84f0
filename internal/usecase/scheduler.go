package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/arnoldongithub/atlantic-anvil/internal/ports"
)

// Scheduler binds the importer to a recurring trigger.
type Scheduler struct {
	driver   ports.Scheduler
	importer *Importer
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring imports.
func NewScheduler(driver ports.Scheduler, importer *Importer, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{driver: driver, importer: importer, logger: logger}
}

// Start registers the importer with the driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.importer == nil {
		return nil
	}

	job := func(trigger time.Time) {
		s.logger.Debug("scheduled import triggered", "at", trigger)
		if _, err := s.importer.Run(ctx); err != nil {
			s.logger.Error("scheduled import failed", "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop tears down the driver.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
