package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arnoldongithub/atlantic-anvil/internal/classify"
	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
	"github.com/arnoldongithub/atlantic-anvil/internal/ports"
)

// InsertOutcome classifies the result of persisting one article.
type InsertOutcome int

const (
	OutcomeImported InsertOutcome = iota
	OutcomeDuplicate
	OutcomeFailed
)

func (o InsertOutcome) String() string {
	switch o {
	case OutcomeImported:
		return "imported"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "failed"
	}
}

// SourceDefaults fills the metadata of sources created on first sight.
type SourceDefaults struct {
	CountryCode       string
	LanguageCode      string
	Category          string
	DescriptionSuffix string
}

// GatewayDeps wires the store and optional queue behind the gateway.
type GatewayDeps struct {
	Repository          ports.ContentRepository
	Queue               ports.SummaryQueue
	Classifier          *classify.Classifier
	Defaults            SourceDefaults
	EnableSummarization bool
	Logger              *slog.Logger
}

// Gateway is the only path through which the import mutates shared storage.
type Gateway struct {
	repo       ports.ContentRepository
	queue      ports.SummaryQueue
	classifier *classify.Classifier
	defaults   SourceDefaults
	summarize  bool
	logger     *slog.Logger
}

// NewGateway builds a gateway. Without a Queue, jobs go to the repository's own queue table.
func NewGateway(deps GatewayDeps) *Gateway {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	classifier := deps.Classifier
	if classifier == nil {
		classifier = classify.NewClassifier(nil)
	}
	return &Gateway{
		repo:       deps.Repository,
		queue:      deps.Queue,
		classifier: classifier,
		defaults:   deps.Defaults,
		summarize:  deps.EnableSummarization,
		logger:     logger,
	}
}

// EnsureSource creates the source row when missing. Failures are logged only.
func (g *Gateway) EnsureSource(ctx context.Context, def domain.SourceDefinition) {
	_, err := g.repo.FindSourceID(ctx, def.Key)
	if err == nil {
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		g.logger.Error("check source", "source", def.Key, "error", err)
		return
	}

	record := SourceRecordFor(def, g.defaults)
	if err := g.repo.InsertSource(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return
		}
		g.logger.Error("create source", "source", def.Key, "error", err)
		return
	}
	g.logger.Info("source created", "source", def.Key, "display_name", def.DisplayName)
}

// SourceRecordFor derives the persisted row for a definition.
func SourceRecordFor(def domain.SourceDefinition, defaults SourceDefaults) domain.SourceRecord {
	description := def.DisplayName
	if defaults.DescriptionSuffix != "" {
		description = def.DisplayName + " - " + defaults.DescriptionSuffix
	}
	return domain.SourceRecord{
		Name:         def.Key,
		DisplayName:  def.DisplayName,
		URL:          fmt.Sprintf("https://%s.com", strings.Replace(def.Key, "-", "", 1)),
		RSSURL:       def.PrimaryFeedURL(),
		Description:  description,
		IsActive:     true,
		CountryCode:  defaults.CountryCode,
		LanguageCode: defaults.LanguageCode,
		Category:     defaults.Category,
	}
}

// ArticleExists reports whether an article with this URL is already stored.
func (g *Gateway) ArticleExists(ctx context.Context, originalURL string) (bool, error) {
	return g.repo.ArticleExists(ctx, originalURL)
}

// LookupSourceID returns the stored id for key; ok is false when the source is absent.
func (g *Gateway) LookupSourceID(ctx context.Context, key string) (id string, ok bool, err error) {
	id, err = g.repo.FindSourceID(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// ResolveCategory maps entry text to a stored category id, or nil.
func (g *Gateway) ResolveCategory(ctx context.Context, title, snippet string, tags []string) *string {
	id, err := g.classifier.Resolve(ctx, g.repo, title, snippet, tags)
	if err != nil {
		g.logger.Warn("category lookup", "error", err)
	}
	return id
}

// InsertArticle persists article and classifies the result.
func (g *Gateway) InsertArticle(ctx context.Context, article domain.Article) (InsertOutcome, string) {
	id, err := g.repo.InsertArticle(ctx, article)
	switch {
	case err == nil:
		return OutcomeImported, id
	case errors.Is(err, domain.ErrDuplicate):
		return OutcomeDuplicate, ""
	default:
		g.logger.Error("insert article", "url", article.OriginalURL, "source", article.SourceKey, "error", err)
		return OutcomeFailed, ""
	}
}

// EnqueueSummarization registers a follow-up job when the feature is enabled.
// Duplicates are ignored and other failures are logged.
func (g *Gateway) EnqueueSummarization(ctx context.Context, articleID string) {
	if !g.summarize || articleID == "" {
		return
	}

	var err error
	if g.queue != nil {
		err = g.queue.Enqueue(ctx, articleID)
	} else {
		err = g.repo.EnqueueSummarization(ctx, articleID)
	}
	if err != nil && !errors.Is(err, domain.ErrDuplicate) {
		g.logger.Error("enqueue summarization", "article_id", articleID, "error", err)
	}
}
