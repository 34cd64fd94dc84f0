package classify

import (
	"context"
	"errors"
	"strings"

	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
)

// DefaultCategory is used when no keyword rule matches.
const DefaultCategory = "breaking"

// Rule binds a category slug to its trigger keywords.
type Rule struct {
	Slug     string
	Keywords []string
}

// DefaultRules is the ordered keyword table. Order decides ties.
func DefaultRules() []Rule {
	return []Rule{
		{Slug: "trump", Keywords: []string{"trump", "donald", "maga", "president trump", "45th", "47th"}},
		{Slug: "republican-party", Keywords: []string{"gop", "republican", "congress", "senate", "house", "mccarthy", "mcconnell"}},
		{Slug: "europe", Keywords: []string{"europe", "eu", "brexit", "france", "germany", "uk", "britain", "italy"}},
		{Slug: "elon-musk", Keywords: []string{"elon", "musk", "tesla", "spacex", "twitter", "x.com", "x platform"}},
		{Slug: "steve-bannon", Keywords: []string{"bannon", "war room", "populist", "bannons"}},
		{Slug: "breaking", Keywords: []string{"breaking", "urgent", "alert", "just in", "developing", "update"}},
	}
}

// CategoryLookup resolves a category slug to its stored id.
type CategoryLookup interface {
	FindCategoryID(ctx context.Context, slug string) (string, error)
}

// Classifier assigns topical categories by keyword substring matching.
type Classifier struct {
	rules    []Rule
	fallback string
}

// NewClassifier uses DefaultRules when rules is empty.
func NewClassifier(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules, fallback: DefaultCategory}
}

// Match returns every matching slug in table order.
func (c *Classifier) Match(title, snippet string, tags []string) []string {
	text := strings.ToLower(title + " " + snippet + " " + strings.Join(tags, " "))

	var slugs []string
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				slugs = append(slugs, rule.Slug)
				break
			}
		}
	}
	return slugs
}

// Resolve returns the id of the first matching category present in the store,
// then the fallback category, then nil. Lookup errors other than
// domain.ErrNotFound are returned together with the best id found so far.
func (c *Classifier) Resolve(ctx context.Context, lookup CategoryLookup, title, snippet string, tags []string) (*string, error) {
	var lookupErr error
	candidates := append(c.Match(title, snippet, tags), c.fallback)

	for _, slug := range candidates {
		id, err := lookup.FindCategoryID(ctx, slug)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) && lookupErr == nil {
				lookupErr = err
			}
			continue
		}
		if id != "" {
			return &id, lookupErr
		}
	}
	return nil, lookupErr
}
