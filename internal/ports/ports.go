package ports

import (
	"context"
	"time"

	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
)

// FeedFetcher retrieves and parses one feed URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]domain.RawEntry, error)
}

// ContentRepository is the storage surface the import pipeline needs.
// InsertArticle and EnqueueSummarization return domain.ErrDuplicate on
// uniqueness violations; lookups return domain.ErrNotFound when nothing matches.
type ContentRepository interface {
	FindSourceID(ctx context.Context, key string) (string, error)
	InsertSource(ctx context.Context, source domain.SourceRecord) error
	ArticleExists(ctx context.Context, originalURL string) (bool, error)
	FindCategoryID(ctx context.Context, slug string) (string, error)
	InsertArticle(ctx context.Context, article domain.Article) (string, error)
	EnqueueSummarization(ctx context.Context, articleID string) error
}

// SummaryQueue registers post-ingestion summarization jobs.
type SummaryQueue interface {
	Enqueue(ctx context.Context, articleID string) error
}

// Scheduler controls when imports execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
