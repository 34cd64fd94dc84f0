package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/arnoldongithub/atlantic-anvil/internal/config"
	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
	"github.com/arnoldongithub/atlantic-anvil/internal/infrastructure/feed"
	"github.com/arnoldongithub/atlantic-anvil/internal/infrastructure/queue"
	"github.com/arnoldongithub/atlantic-anvil/internal/infrastructure/scheduler"
	"github.com/arnoldongithub/atlantic-anvil/internal/infrastructure/storage"
	"github.com/arnoldongithub/atlantic-anvil/internal/logging"
	"github.com/arnoldongithub/atlantic-anvil/internal/ports"
	"github.com/arnoldongithub/atlantic-anvil/internal/sources"
	"github.com/arnoldongithub/atlantic-anvil/internal/usecase"
)

const shutdownTimeout = 2 * time.Minute

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	importer  *usecase.Importer
	scheduler *usecase.Scheduler
	closers   []io.Closer
}

// New opens the store, prepares the schema and builds the importer.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	registry, err := sources.New(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("build source registry: %w", err)
	}

	db, err := storage.Open(ctx, cfg.Store.Driver, cfg.Store.URL, cfg.Store.AdminKey)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	application := &Application{cfg: cfg, logger: baseLogger, closers: []io.Closer{db}}

	repo := storage.NewSQLRepository(db, cfg.Store.Driver)
	if err := repo.Migrate(ctx); err != nil {
		_ = application.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	summaryQueue, err := application.buildQueue()
	if err != nil {
		_ = application.Close()
		return nil, err
	}

	gateway := usecase.NewGateway(usecase.GatewayDeps{
		Repository: repo,
		Queue:      summaryQueue,
		Defaults: usecase.SourceDefaults{
			CountryCode:       cfg.SourceDefaults.CountryCode,
			LanguageCode:      cfg.SourceDefaults.LanguageCode,
			Category:          cfg.SourceDefaults.Category,
			DescriptionSuffix: cfg.SourceDefaults.DescriptionSuffix,
		},
		EnableSummarization: cfg.Summarization.Enabled,
		Logger:              baseLogger.With("component", "gateway"),
	})

	fetcher := feed.NewFetcher(feed.Options{
		Timeout:      cfg.Fetcher.Timeout,
		MaxRedirects: cfg.Fetcher.MaxRedirects,
		UserAgent:    cfg.Fetcher.UserAgent,
	}, baseLogger.With("component", "fetcher"))

	application.importer = usecase.NewImporter(usecase.ImporterDeps{
		Registry:          registry,
		Fetcher:           fetcher,
		Gateway:           gateway,
		Concurrency:       cfg.Importer.Concurrency,
		MaxEntriesPerFeed: cfg.Importer.MaxEntriesPerFeed,
		Logger:            baseLogger.With("component", "importer"),
	})

	driver := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location(), baseLogger.With("component", "scheduler"))
	application.scheduler = usecase.NewScheduler(driver, application.importer, baseLogger.With("component", "scheduler"))

	return application, nil
}

func (a *Application) buildQueue() (ports.SummaryQueue, error) {
	summ := a.cfg.Summarization
	if !summ.Enabled {
		return nil, nil
	}

	switch summ.Backend {
	case config.BackendRedis:
		q := queue.NewRedisQueue(queue.RedisOptions{
			Addr:     summ.Redis.Addr,
			Password: summ.Redis.Password,
			DB:       summ.Redis.DB,
			Prefix:   summ.Redis.Prefix,
		})
		a.closers = append(a.closers, q)
		return q, nil
	case config.BackendKafka:
		producer, err := queue.NewKafkaProducer(summ.Kafka.Brokers)
		if err != nil {
			return nil, err
		}
		q := queue.NewKafkaQueue(producer, summ.Kafka.Topic)
		a.closers = append(a.closers, q)
		return q, nil
	default:
		return nil, nil
	}
}

// RunOnce performs a single import and returns its report.
func (a *Application) RunOnce(ctx context.Context) (*domain.RunReport, error) {
	return a.importer.Run(ctx)
}

// RunScheduled imports immediately and then on the configured schedule until ctx is cancelled.
func (a *Application) RunScheduled(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduled mode", "cron", a.cfg.Scheduler.CronExpression, "timezone", a.cfg.Scheduler.Location().String())

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.scheduler.Stop(stopCtx)
}

// Close releases the store and queue connections.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
