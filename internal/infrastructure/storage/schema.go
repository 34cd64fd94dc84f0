package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CategorySeed is a row inserted into categories by Migrate when absent.
type CategorySeed struct {
	Slug string
	Name string
}

// DefaultCategories are the slugs the classifier can produce.
var DefaultCategories = []CategorySeed{
	{Slug: "trump", Name: "Trump"},
	{Slug: "republican-party", Name: "Republican Party"},
	{Slug: "europe", Name: "Europe"},
	{Slug: "elon-musk", Name: "Elon Musk"},
	{Slug: "steve-bannon", Name: "Steve Bannon"},
	{Slug: "breaking", Name: "Breaking News"},
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS news_sources (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		url TEXT,
		rss_url TEXT,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		country_code TEXT,
		language_code TEXT,
		category TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		content TEXT,
		excerpt TEXT,
		original_url TEXT NOT NULL UNIQUE,
		image_url TEXT,
		thumbnail_url TEXT,
		source_id TEXT NOT NULL REFERENCES news_sources(id),
		category_id TEXT REFERENCES categories(id),
		author TEXT,
		published_at TIMESTAMP NOT NULL,
		word_count INTEGER NOT NULL DEFAULT 0,
		reading_time INTEGER NOT NULL DEFAULT 0,
		positivity_score INTEGER NOT NULL DEFAULT 5,
		virality_score INTEGER NOT NULL DEFAULT 5,
		trending_score INTEGER NOT NULL DEFAULT 5,
		status TEXT NOT NULL DEFAULT 'published',
		meta_keywords TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_slug ON articles(slug)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at)`,
	`CREATE TABLE IF NOT EXISTS summarization_queue (
		id TEXT PRIMARY KEY,
		article_id TEXT NOT NULL UNIQUE REFERENCES articles(id),
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Migrate creates the tables when missing and seeds the category slugs.
func (r *SQLRepository) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	for _, seed := range DefaultCategories {
		_, err := r.builder.
			Insert("categories").
			Columns("id", "slug", "name").
			Values(uuid.NewString(), seed.Slug, seed.Name).
			Suffix("ON CONFLICT (slug) DO NOTHING").
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", seed.Slug, err)
		}
	}
	return nil
}
