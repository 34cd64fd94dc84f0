package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/feeds"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
  xmlns:content="http://purl.org/rss/1.0/modules/content/"
  xmlns:dc="http://purl.org/dc/elements/1.1/"
  xmlns:media="http://search.yahoo.com/mrss/">
<channel>
  <title>Fixture</title>
  <link>https://example.com</link>
  <description>fixture feed</description>
  <item>
    <title>Senate passes bill</title>
    <link>https://example.com/senate</link>
    <description><![CDATA[<p>Short &amp; sweet</p>]]></description>
    <content:encoded><![CDATA[<p>Full body <img src="https://cdn.example.com/body.jpg"></p>]]></content:encoded>
    <dc:creator>Jane Roe</dc:creator>
    <pubDate>Sat, 17 Oct 2026 10:00:00 GMT</pubDate>
    <enclosure url="https://cdn.example.com/pod.mp3" type="audio/mpeg" length="1"/>
    <media:thumbnail url="https://cdn.example.com/thumb.jpg"/>
    <category>Politics</category>
  </item>
  <item>
    <title>Second</title>
    <link>https://example.com/second</link>
    <description>plain</description>
    <media:group>
      <media:content url="https://cdn.example.com/group.jpg" medium="image"/>
    </media:group>
  </item>
</channel>
</rss>`

func TestFetchRSSWithExtensions(t *testing.T) {
	t.Parallel()

	agents := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case agents <- r.Header.Get("User-Agent"):
		default:
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	f := NewFetcher(Options{}, nil)
	entries, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if ua := <-agents; ua != "Atlantic Anvil News Aggregator/1.0" {
		t.Fatalf("unexpected user agent: %q", ua)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.Title != "Senate passes bill" || first.Link != "https://example.com/senate" {
		t.Fatalf("unexpected identity: %+v", first)
	}
	if !strings.Contains(first.EncodedContent, "Full body") {
		t.Fatalf("content:encoded not mapped: %q", first.EncodedContent)
	}
	if !strings.Contains(first.Content, "Short") {
		t.Fatalf("description not mapped: %q", first.Content)
	}
	if first.Snippet != "Short & sweet" {
		t.Fatalf("unexpected snippet: %q", first.Snippet)
	}
	if first.Creator != "Jane Roe" {
		t.Fatalf("dc:creator not mapped: %q", first.Creator)
	}
	if first.Enclosure == nil || first.Enclosure.Type != "audio/mpeg" {
		t.Fatalf("enclosure not mapped: %+v", first.Enclosure)
	}
	if first.MediaThumbnail != "https://cdn.example.com/thumb.jpg" {
		t.Fatalf("media:thumbnail not mapped: %q", first.MediaThumbnail)
	}
	if first.PublishedAt == nil || !first.PublishedAt.Equal(time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected publish time: %v", first.PublishedAt)
	}
	if len(first.Categories) != 1 || first.Categories[0] != "Politics" {
		t.Fatalf("unexpected categories: %v", first.Categories)
	}

	second := entries[1]
	if second.MediaContent != "https://cdn.example.com/group.jpg" {
		t.Fatalf("media:group content not mapped: %q", second.MediaContent)
	}
	if second.PublishedAt != nil {
		t.Fatalf("expected no publish time, got %v", second.PublishedAt)
	}
}

func TestFetchAtom(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	fixture := &feeds.Feed{
		Title:       "Atom fixture",
		Link:        &feeds.Link{Href: "https://example.org"},
		Description: "atom",
		Created:     created,
		Items: []*feeds.Item{
			{
				Title:       "Europe summit",
				Link:        &feeds.Link{Href: "https://example.org/summit"},
				Description: "summary text",
				Content:     "<p>body text</p>",
				Author:      &feeds.Author{Name: "John Doe"},
				Created:     created,
			},
		},
	}
	body, err := fixture.ToAtom()
	if err != nil {
		t.Fatalf("render atom: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	entries, err := NewFetcher(Options{}, nil).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Link != "https://example.org/summit" {
		t.Fatalf("unexpected link: %q", entry.Link)
	}
	if entry.EncodedContent != "" || !strings.Contains(entry.Content, "body text") {
		t.Fatalf("atom content mapped wrongly: %+v", entry)
	}
	if entry.Summary != "summary text" {
		t.Fatalf("atom summary not mapped: %q", entry.Summary)
	}
	if entry.Author != "John Doe" {
		t.Fatalf("author not mapped: %q", entry.Author)
	}
	if entry.PublishedAt == nil {
		t.Fatalf("expected publish time")
	}
}

func TestFetchRejectsNonOK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewFetcher(Options{}, nil).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for 502 response")
	}
}

func TestFetchRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not a feed"))
	}))
	defer srv.Close()

	if _, err := NewFetcher(Options{}, nil).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	small := NewFetcher(Options{MaxBodyBytes: 64}, nil)
	if _, err := small.Fetch(context.Background(), srv.URL); !errors.Is(err, ErrFeedTooLarge) {
		t.Fatalf("expected ErrFeedTooLarge, got %v", err)
	}

	exact := NewFetcher(Options{MaxBodyBytes: int64(len(rssFixture))}, nil)
	if _, err := exact.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("body at the limit should be accepted: %v", err)
	}
}

func TestFetchRedirectLimit(t *testing.T) {
	t.Parallel()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hop, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/hop/"))
		if r.URL.Path == "/feed" {
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(rssFixture))
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if hop >= limit {
			http.Redirect(w, r, srv.URL+"/feed", http.StatusFound)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("%s/hop/%d?limit=%d", srv.URL, hop+1, limit), http.StatusFound)
	}))
	defer srv.Close()

	f := NewFetcher(Options{MaxRedirects: 5}, nil)

	// hop/1 .. hop/4 then /feed: five redirects in total.
	if _, err := f.Fetch(context.Background(), srv.URL+"/hop/0?limit=4"); err != nil {
		t.Fatalf("five redirects should be followed: %v", err)
	}

	_, err := f.Fetch(context.Background(), srv.URL+"/hop/0?limit=10")
	if !errors.Is(err, ErrTooManyRedirects) {
		t.Fatalf("expected ErrTooManyRedirects, got %v", err)
	}
}
