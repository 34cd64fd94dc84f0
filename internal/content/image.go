package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
)

// ExtractImage walks the image fallback chain and returns the first hit:
// image enclosure, media thumbnail, media content, first <img src> in the
// body HTML. An empty string means no image was found.
func ExtractImage(entry domain.RawEntry) string {
	if enc := entry.Enclosure; enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
		return enc.URL
	}
	if entry.MediaThumbnail != "" {
		return entry.MediaThumbnail
	}
	if entry.MediaContent != "" {
		return entry.MediaContent
	}
	return firstImageSource(firstNonEmpty(entry.Content, entry.Summary))
}

func firstImageSource(html string) string {
	if !strings.Contains(html, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	var src string
	doc.Find("img[src]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src = strings.TrimSpace(img.AttrOr("src", ""))
		return src == ""
	})
	return src
}
