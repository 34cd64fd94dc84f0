package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
	"github.com/arnoldongithub/atlantic-anvil/internal/ports"
)

// SQLRepository stores sources, articles and summarization jobs through database/sql.
type SQLRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ContentRepository = (*SQLRepository)(nil)

// NewSQLRepository wires a sql.DB opened with the given driver name.
func NewSQLRepository(db *sql.DB, driver string) *SQLRepository {
	return &SQLRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholderFor(driver)).RunWith(db),
	}
}

// FindSourceID returns the id of the source whose name equals key.
func (r *SQLRepository) FindSourceID(ctx context.Context, key string) (string, error) {
	return r.selectID(ctx, "news_sources", sq.Eq{"name": key})
}

// InsertSource creates a source row. A concurrent insert of the same key yields domain.ErrDuplicate.
func (r *SQLRepository) InsertSource(ctx context.Context, source domain.SourceRecord) error {
	if source.ID == "" {
		source.ID = uuid.NewString()
	}

	_, err := r.builder.
		Insert("news_sources").
		Columns("id", "name", "display_name", "url", "rss_url", "description",
			"is_active", "country_code", "language_code", "category").
		Values(source.ID, source.Name, source.DisplayName, source.URL, source.RSSURL, source.Description,
			source.IsActive, source.CountryCode, source.LanguageCode, source.Category).
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert source %s: %w", source.Name, err)
	}
	return nil
}

// ArticleExists probes for an article by its canonical URL.
func (r *SQLRepository) ArticleExists(ctx context.Context, originalURL string) (bool, error) {
	_, err := r.selectID(ctx, "articles", sq.Eq{"original_url": originalURL})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// FindCategoryID resolves a category slug.
func (r *SQLRepository) FindCategoryID(ctx context.Context, slug string) (string, error) {
	return r.selectID(ctx, "categories", sq.Eq{"slug": slug})
}

// InsertArticle persists a normalized article and returns its id.
func (r *SQLRepository) InsertArticle(ctx context.Context, article domain.Article) (string, error) {
	if article.SourceID == "" {
		return "", fmt.Errorf("insert article %s: missing source id", article.OriginalURL)
	}
	if article.ID == "" {
		article.ID = uuid.NewString()
	}

	keywords, err := json.Marshal(nonNilStrings(article.Tags))
	if err != nil {
		return "", fmt.Errorf("encode keywords: %w", err)
	}

	var categoryID any
	if article.CategoryID != nil {
		categoryID = *article.CategoryID
	}

	_, err = r.builder.
		Insert("articles").
		Columns("id", "title", "slug", "content", "excerpt", "original_url",
			"image_url", "thumbnail_url", "source_id", "category_id", "author", "published_at",
			"word_count", "reading_time", "positivity_score", "virality_score", "trending_score",
			"status", "meta_keywords").
		Values(article.ID, article.Title, article.Slug, article.Content, article.Excerpt, article.OriginalURL,
			nullString(article.ImageURL), nullString(article.ThumbnailURL), article.SourceID, categoryID,
			article.Author, article.PublishedAt.UTC(),
			article.WordCount, article.ReadingTimeMinutes, article.PositivityScore, article.ViralityScore,
			article.TrendingScore, string(article.Status), string(keywords)).
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("insert article %s: %w", article.OriginalURL, err)
	}
	return article.ID, nil
}

// EnqueueSummarization adds a pending job; a second job for the same article is domain.ErrDuplicate.
func (r *SQLRepository) EnqueueSummarization(ctx context.Context, articleID string) error {
	_, err := r.builder.
		Insert("summarization_queue").
		Columns("id", "article_id", "status").
		Values(uuid.NewString(), articleID, "pending").
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("enqueue summarization %s: %w", articleID, err)
	}
	return nil
}

// CountArticles returns the number of stored articles.
func (r *SQLRepository) CountArticles(ctx context.Context) (int, error) {
	var n int
	err := r.builder.Select("COUNT(*)").From("articles").QueryRowContext(ctx).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// PendingSummaries lists article ids waiting in the store-backed queue, oldest first.
func (r *SQLRepository) PendingSummaries(ctx context.Context, limit uint64) ([]string, error) {
	rows, err := r.builder.
		Select("article_id").
		From("summarization_queue").
		Where(sq.Eq{"status": "pending"}).
		OrderBy("created_at", "id").
		Limit(limit).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query pending summaries: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan article id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return ids, nil
}

func (r *SQLRepository) selectID(ctx context.Context, table string, where sq.Eq) (string, error) {
	var id string
	err := r.builder.Select("id").From(table).Where(where).Limit(1).QueryRowContext(ctx).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("select %s id: %w", table, err)
	}
	return id, nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
