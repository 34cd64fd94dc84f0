package domain

import (
	"errors"
	"time"
)

var (
	// ErrDuplicate signals a uniqueness violation in the content store.
	ErrDuplicate = errors.New("duplicate")
	// ErrNotFound is returned by lookups that matched no row.
	ErrNotFound = errors.New("not found")
)

// FeedDefinition is one syndication endpoint of a publisher.
type FeedDefinition struct {
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// SourceDefinition describes a tracked publisher and its feeds.
type SourceDefinition struct {
	Key         string           `yaml:"key"`
	Name        string           `yaml:"name"`
	DisplayName string           `yaml:"displayName"`
	Feeds       []FeedDefinition `yaml:"feeds"`
}

// PrimaryFeedURL returns the first configured feed or an empty string.
func (s SourceDefinition) PrimaryFeedURL() string {
	if len(s.Feeds) == 0 {
		return ""
	}
	return s.Feeds[0].URL
}

// Enclosure is an RSS enclosure reference.
type Enclosure struct {
	URL  string
	Type string
}

// RawEntry is one feed item as the fetcher saw it. Fields are optional;
// dialects populate different subsets.
type RawEntry struct {
	Title          string
	Link           string
	EncodedContent string
	Content        string
	Summary        string
	Snippet        string
	PublishedAt    *time.Time
	Author         string
	Creator        string
	Enclosure      *Enclosure
	MediaThumbnail string
	MediaContent   string
	Categories     []string
}

// ArticleStatus enumerates publication states.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// Article is the normalized unit persisted downstream.
type Article struct {
	ID                 string
	Title              string
	Slug               string
	Content            string
	Excerpt            string
	OriginalURL        string
	ImageURL           string
	ThumbnailURL       string
	SourceKey          string
	SourceID           string
	CategoryID         *string
	FeedCategory       string
	Author             string
	PublishedAt        time.Time
	WordCount          int
	ReadingTimeMinutes int
	PositivityScore    int
	ViralityScore      int
	TrendingScore      int
	Status             ArticleStatus
	Tags               []string
}

// SourceRecord is the persisted shape of a publisher.
type SourceRecord struct {
	ID           string
	Name         string
	DisplayName  string
	URL          string
	RSSURL       string
	Description  string
	IsActive     bool
	CountryCode  string
	LanguageCode string
	Category     string
}
