package board

import (
	"regexp"
	"strings"
)

// Pin is one normalized board item. Created during ingestion and not
// mutated afterwards.
type Pin struct {
	Title       string `json:"title"`
	Caption     string `json:"caption"`
	Description string `json:"description"`
	ImageRef    string `json:"image"`
	SourceLink  string `json:"link"`
}

// Text returns the lowercased concatenation of the pin's textual
// fields. Description keeps the raw item markup, so trigger words that
// only survive inside attributes (alt text, image URLs) still match.
func (p Pin) Text() string {
	return strings.ToLower(p.Title + " " + p.Caption + " " + p.Description)
}

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	imgSrcRe     = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
)

// CleanCaption strips markup from a raw item description: tags removed,
// the four common HTML entities decoded, whitespace runs collapsed.
func CleanCaption(raw string) string {
	s := tagRe.ReplaceAllString(raw, " ")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// extractImageRef pulls the first embedded image URL out of the raw
// description markup. Returns "" when the item has no image.
func extractImageRef(raw string) string {
	if m := imgSrcRe.FindStringSubmatch(raw); len(m) > 1 {
		return m[1]
	}
	return ""
}
