package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arnoldongithub/atlantic-anvil/internal/classify"
	"github.com/arnoldongithub/atlantic-anvil/internal/content"
	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
	"github.com/arnoldongithub/atlantic-anvil/internal/ports"
	"github.com/arnoldongithub/atlantic-anvil/internal/sources"
)

const (
	defaultConcurrency       = 5
	defaultMaxEntriesPerFeed = 15
)

// ImporterDeps wires the collaborators of one import run.
type ImporterDeps struct {
	Registry          *sources.Registry
	Fetcher           ports.FeedFetcher
	Gateway           *Gateway
	Concurrency       int
	MaxEntriesPerFeed int
	Logger            *slog.Logger
	Now               func() time.Time
}

// Importer pulls every configured feed and persists new articles.
type Importer struct {
	registry    *sources.Registry
	fetcher     ports.FeedFetcher
	gateway     *Gateway
	concurrency int
	maxEntries  int
	logger      *slog.Logger
	now         func() time.Time
}

// NewImporter applies defaults for concurrency (5) and entries per feed (15).
func NewImporter(deps ImporterDeps) *Importer {
	imp := &Importer{
		registry:    deps.Registry,
		fetcher:     deps.Fetcher,
		gateway:     deps.Gateway,
		concurrency: deps.Concurrency,
		maxEntries:  deps.MaxEntriesPerFeed,
		logger:      deps.Logger,
		now:         deps.Now,
	}
	if imp.concurrency <= 0 {
		imp.concurrency = defaultConcurrency
	}
	if imp.maxEntries <= 0 {
		imp.maxEntries = defaultMaxEntriesPerFeed
	}
	if imp.logger == nil {
		imp.logger = slog.Default()
	}
	if imp.now == nil {
		imp.now = time.Now
	}
	return imp
}

// Run executes one complete pass over all (source, feed) pairs. Feed and
// store failures are counted in the report; an error is returned only when
// the importer is not wired.
func (i *Importer) Run(ctx context.Context) (*domain.RunReport, error) {
	if i.registry == nil || i.fetcher == nil || i.gateway == nil {
		return nil, errors.New("importer is not configured")
	}

	report := &domain.RunReport{RunID: uuid.NewString(), StartedAt: i.now()}
	logger := i.logger.With("run_id", report.RunID)
	logger.Info("import started", "sources", i.registry.Len(), "feeds", i.registry.FeedCount())

	defs := i.registry.All()
	for _, def := range defs {
		i.gateway.EnsureSource(ctx, def)
	}

	stats := domain.NewRunStats()
	var g errgroup.Group
	g.SetLimit(i.concurrency)
	for _, def := range defs {
		for _, feed := range def.Feeds {
			g.Go(func() error {
				i.processFeed(ctx, logger, def, feed, stats)
				return nil
			})
		}
	}
	_ = g.Wait()

	report.Stats = stats.Snapshot()
	report.Duration = i.now().Sub(report.StartedAt)
	logSummary(logger, report)
	return report, nil
}

func (i *Importer) processFeed(ctx context.Context, logger *slog.Logger, def domain.SourceDefinition, feed domain.FeedDefinition, stats *domain.RunStats) {
	feedLogger := logger.With("source", def.DisplayName, "category", feed.Category, "url", feed.URL)
	feedLogger.Debug("fetching feed")

	entries, err := i.fetcher.Fetch(ctx, feed.URL)
	if err != nil {
		feedLogger.Error("feed failed", "error", err)
		stats.AddError()
		return
	}
	stats.TrackSource(def.DisplayName)

	if len(entries) > i.maxEntries {
		entries = entries[:i.maxEntries]
	}
	for _, entry := range entries {
		i.processEntry(ctx, feedLogger, def, feed.Category, entry, stats)
	}
}

func (i *Importer) processEntry(ctx context.Context, logger *slog.Logger, def domain.SourceDefinition, feedCategory string, entry domain.RawEntry, stats *domain.RunStats) {
	if entry.Link == "" {
		logger.Warn("entry without link", "title", entry.Title)
		stats.AddError()
		return
	}

	exists, err := i.gateway.ArticleExists(ctx, entry.Link)
	if err != nil {
		logger.Error("check article", "link", entry.Link, "error", err)
		stats.AddError()
		return
	}
	if exists {
		stats.AddDuplicate()
		return
	}

	sourceID, ok, err := i.gateway.LookupSourceID(ctx, def.Key)
	if err != nil {
		logger.Error("lookup source", "error", err)
		stats.AddError()
		return
	}
	if !ok {
		logger.Error("source not found", "key", def.Key)
		return
	}

	now := i.now()
	article := content.Normalize(entry, def, feedCategory, now)
	article.SourceID = sourceID
	article.CategoryID = i.gateway.ResolveCategory(ctx, entry.Title, entry.Snippet, entry.Categories)
	article.PositivityScore = classify.Positivity(article.Title, entry.Snippet)
	article.ViralityScore = classify.Virality(article.Title, entry.Snippet)
	article.TrendingScore = classify.Trending(entry.PublishedAt, now)

	outcome, id := i.gateway.InsertArticle(ctx, article)
	switch outcome {
	case OutcomeImported:
		stats.AddImported(def.DisplayName)
		i.gateway.EnqueueSummarization(ctx, id)
	case OutcomeDuplicate:
		stats.AddDuplicate()
	default:
		stats.AddError()
	}
}

func logSummary(logger *slog.Logger, report *domain.RunReport) {
	logger.Info("import complete",
		"duration", report.Duration.Round(time.Millisecond),
		"imported", report.Stats.Imported,
		"duplicates", report.Stats.Duplicates,
		"errors", report.Stats.Errors,
	)
	for _, row := range report.Stats.Sources {
		if row.Count == 0 {
			continue
		}
		logger.Info("source breakdown", "source", row.Source, "imported", row.Count)
	}
}
