package content

import (
	"time"

	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
)

// SelectContent picks the richest body available and cleans it.
func SelectContent(entry domain.RawEntry) string {
	return CleanText(firstNonEmpty(entry.EncodedContent, entry.Content, entry.Summary, entry.Snippet))
}

// Normalize converts a feed entry into an article ready for persistence.
// Identity, source id, category and scores are assigned by later stages.
func Normalize(entry domain.RawEntry, source domain.SourceDefinition, feedCategory string, now time.Time) domain.Article {
	published := now
	if entry.PublishedAt != nil && !entry.PublishedAt.IsZero() {
		published = *entry.PublishedAt
	}

	words := CountWords(firstNonEmpty(entry.Content, entry.Summary))
	image := ExtractImage(entry)

	return domain.Article{
		Title:              CleanText(entry.Title),
		Slug:               Slug(entry.Title),
		Content:            SelectContent(entry),
		Excerpt:            CleanText(firstNonEmpty(entry.Snippet, entry.Summary)),
		OriginalURL:        entry.Link,
		ImageURL:           image,
		ThumbnailURL:       image,
		SourceKey:          source.Key,
		FeedCategory:       feedCategory,
		Author:             firstNonEmpty(entry.Creator, entry.Author, source.DisplayName),
		PublishedAt:        published.UTC(),
		WordCount:          words,
		ReadingTimeMinutes: ReadingTime(words),
		Status:             domain.StatusPublished,
		Tags:               append([]string(nil), entry.Categories...),
	}
}
