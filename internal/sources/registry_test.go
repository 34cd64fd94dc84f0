package sources

import (
	"testing"

	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
)

func TestDefaultsRegistry(t *testing.T) {
	t.Parallel()

	reg, err := New(Defaults())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if reg.Len() != 23 {
		t.Fatalf("expected 23 sources, got %d", reg.Len())
	}
	if reg.FeedCount() != 34 {
		t.Fatalf("expected 34 feeds, got %d", reg.FeedCount())
	}

	all := reg.All()
	if all[0].Key != "fox-news" || all[len(all)-1].Key != "heritage" {
		t.Fatalf("declaration order not kept: first=%s last=%s", all[0].Key, all[len(all)-1].Key)
	}

	def, ok := reg.Lookup("wall-street-journal")
	if !ok {
		t.Fatalf("lookup failed")
	}
	if def.DisplayName != "WSJ Opinion" || def.PrimaryFeedURL() != "https://feeds.a.dj.com/rss/RSSOpinion.xml" {
		t.Fatalf("unexpected definition: %+v", def)
	}
}

func TestNewRejectsDuplicateKeys(t *testing.T) {
	t.Parallel()

	_, err := New([]domain.SourceDefinition{
		{Key: "a", DisplayName: "A"},
		{Key: "a", DisplayName: "A again"},
	})
	if err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestNewDefaultsDisplayNameToName(t *testing.T) {
	t.Parallel()

	reg, err := New([]domain.SourceDefinition{{Key: "x", Name: "Example"}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	def, _ := reg.Lookup("x")
	if def.DisplayName != "Example" {
		t.Fatalf("expected display name fallback, got %q", def.DisplayName)
	}
}
