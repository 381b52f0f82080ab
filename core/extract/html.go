package extract

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// preprocessHTML converts HTML-looking input to markdown. Models that reply
// through rich-text channels wrap their payload in markup; after conversion
// a <pre><code> block becomes a markdown fence the fence tactic handles.
// Input that does not look like HTML, or fails to convert, passes through
// unchanged.
func preprocessHTML(text string) string {
	if !looksLikeHTML(text) {
		return text
	}
	markdown, err := htmltomarkdown.ConvertString(text)
	if err != nil || strings.TrimSpace(markdown) == "" {
		return text
	}
	return markdown
}

func looksLikeHTML(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range []string{"<html", "<body", "<div", "<p>", "<pre", "<span", "<br"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
