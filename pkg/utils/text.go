package utils

import (
	"regexp"
	"strings"
)

const DefaultPreviewLimit = 50

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// StripHTMLTags drops markup and keeps the text content. Editor output is
// stored as HTML; listings only ever want plain text.
func StripHTMLTags(s string) string {
	return htmlTagPattern.ReplaceAllString(s, "")
}

// PreviewText strips markup and truncates to at most limit runes. Rune
// truncation keeps multi-byte content intact.
func PreviewText(s string, limit int) string {
	plain := strings.TrimSpace(StripHTMLTags(s))
	runes := []rune(plain)
	if len(runes) <= limit {
		return plain
	}
	return string(runes[:limit])
}
