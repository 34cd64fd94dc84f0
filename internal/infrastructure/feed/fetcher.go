package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/arnoldongithub/atlantic-anvil/internal/content"
	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
	"github.com/arnoldongithub/atlantic-anvil/internal/ports"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxRedirects = 5
	defaultUserAgent    = "Atlantic Anvil News Aggregator/1.0"
	defaultMaxBodyBytes = 10 << 20
)

// ErrTooManyRedirects is returned when a feed bounces more than the configured limit.
var ErrTooManyRedirects = errors.New("too many redirects")

// ErrFeedTooLarge is returned when a feed body exceeds the configured size cap.
var ErrFeedTooLarge = errors.New("feed body too large")

// Options tunes the HTTP side of the fetcher. Zero values take defaults.
type Options struct {
	Timeout      time.Duration
	MaxRedirects int
	UserAgent    string
	MaxBodyBytes int64
}

// Fetcher downloads a feed over HTTP and parses RSS, Atom or JSON Feed bodies.
type Fetcher struct {
	client    *http.Client
	parser    *gofeed.Parser
	userAgent string
	maxBody   int64
	logger    *slog.Logger
}

var _ ports.FeedFetcher = (*Fetcher)(nil)

// NewFetcher builds a fetcher with its own client bounded by opts.
func NewFetcher(opts Options, logger *slog.Logger) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = defaultMaxRedirects
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if logger == nil {
		logger = slog.Default()
	}

	maxRedirects := opts.MaxRedirects
	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, maxRedirects)
			}
			return nil
		},
	}

	return &Fetcher{
		client:    client,
		parser:    gofeed.NewParser(),
		userAgent: opts.UserAgent,
		maxBody:   opts.MaxBodyBytes,
		logger:    logger,
	}
}

// Fetch retrieves feedURL and maps every item to a RawEntry.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]domain.RawEntry, error) {
	parsed, err := f.fetchFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	isRSS := parsed.FeedType == "rss"
	entries := make([]domain.RawEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, toRawEntry(item, isRSS))
	}

	f.logger.Debug("feed parsed", "url", feedURL, "type", parsed.FeedType, "items", len(entries))
	return entries, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrFeedTooLarge, f.maxBody)
	}

	parsed, err := f.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return parsed, nil
}

// toRawEntry maps gofeed's universal item back to the dialect fields the
// normalizer expects. For RSS, gofeed puts content:encoded in Content and
// <description> in Description; for Atom, Content is <content> and
// Description is <summary>.
func toRawEntry(item *gofeed.Item, isRSS bool) domain.RawEntry {
	entry := domain.RawEntry{
		Title:      item.Title,
		Link:       item.Link,
		Categories: append([]string(nil), item.Categories...),
	}

	if isRSS {
		entry.EncodedContent = item.Content
		entry.Content = item.Description
	} else {
		entry.Content = item.Content
		entry.Summary = item.Description
	}
	entry.Snippet = content.CleanText(entry.Content)

	switch {
	case item.PublishedParsed != nil:
		t := *item.PublishedParsed
		entry.PublishedAt = &t
	case item.UpdatedParsed != nil:
		t := *item.UpdatedParsed
		entry.PublishedAt = &t
	}

	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		entry.Creator = item.DublinCoreExt.Creator[0]
	}
	if item.Author != nil {
		entry.Author = firstNonEmpty(item.Author.Name, item.Author.Email)
	}

	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		entry.Enclosure = &domain.Enclosure{URL: item.Enclosures[0].URL, Type: item.Enclosures[0].Type}
	}

	entry.MediaThumbnail = mediaURL(item.Extensions, "thumbnail")
	entry.MediaContent = mediaURL(item.Extensions, "content")

	return entry
}

// mediaURL reads media:<name> directly on the item or inside media:group.
func mediaURL(extensions ext.Extensions, name string) string {
	media, ok := extensions["media"]
	if !ok {
		return ""
	}
	if url := extensionURL(media[name]); url != "" {
		return url
	}
	for _, group := range media["group"] {
		if url := extensionURL(group.Children[name]); url != "" {
			return url
		}
	}
	return ""
}

func extensionURL(elements []ext.Extension) string {
	for _, el := range elements {
		if url := firstNonEmpty(el.Attrs["url"], el.Value); url != "" {
			return url
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
