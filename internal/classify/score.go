package classify

import (
	"math"
	"strings"
	"time"
)

const (
	neutralScore = 5
	maxScore     = 10
)

var (
	positiveWords = []string{"win", "victory", "success", "great", "best", "strong", "freedom", "patriot", "america", "hero"}
	negativeWords = []string{"fail", "loss", "crisis", "threat", "danger", "weak", "corrupt", "scandal"}
	viralWords    = []string{"breaking", "exclusive", "shock", "urgent", "boom", "huge", "destroys", "slams", "explosive", "bombshell"}
)

// Positivity scores tone in [0,10]. Each keyword counts once.
func Positivity(title, snippet string) int {
	text := scoringText(title, snippet)
	score := neutralScore + hits(text, positiveWords) - hits(text, negativeWords)
	return max(0, min(maxScore, score))
}

// Virality scores sensational wording, capped at 10.
func Virality(title, snippet string) int {
	return min(maxScore, neutralScore+hits(scoringText(title, snippet), viralWords))
}

// Trending maps article age to a decaying score. Unknown publish time is neutral.
func Trending(published *time.Time, now time.Time) int {
	if published == nil || published.IsZero() {
		return neutralScore
	}

	hours := now.Sub(*published).Hours()
	switch {
	case hours < 1:
		return 10
	case hours < 3:
		return 9
	case hours < 6:
		return 8
	case hours < 12:
		return 7
	case hours < 24:
		return 6
	case hours < 48:
		return 5
	}
	return max(1, neutralScore-int(math.Floor(hours/24)))
}

func scoringText(title, snippet string) string {
	return strings.ToLower(title + " " + snippet)
}

func hits(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}
