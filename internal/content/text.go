package content

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

const (
	maxSlugLength  = 100
	wordsPerMinute = 200
)

var (
	tagExpr        = regexp.MustCompile(`<[^>]*>`)
	whitespaceExpr = regexp.MustCompile(`\s+`)
	entityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#039;", "'",
		"&nbsp;", " ",
	)
)

// CleanText strips markup, decodes the common entities and collapses whitespace.
// Entities are decoded after tags are removed, so an encoded "&lt;b&gt;" survives as text.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := tagExpr.ReplaceAllString(raw, "")
	cleaned = entityReplacer.Replace(cleaned)
	// Fields splits on unicode whitespace, including literal no-break spaces.
	return strings.Join(strings.Fields(cleaned), " ")
}

// Slug derives the URL identifier from a title. It is not unique by construction.
func Slug(title string) string {
	lowered := strings.ToLower(title)
	kept := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, lowered)
	slug := whitespaceExpr.ReplaceAllString(kept, "-")
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}
	return slug
}

// CountWords counts whitespace separated tokens of the cleaned text.
func CountWords(raw string) int {
	return len(strings.Fields(CleanText(raw)))
}

// ReadingTime is ceil(words/200). Zero words means zero minutes.
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
