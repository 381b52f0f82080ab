package extract

import (
	"encoding/xml"
	"regexp"
	"strings"
)

func xmlTactics() []tactic {
	return []tactic{
		{name: "direct", apply: direct},
		{name: "fenced-block", apply: func(text string) (string, bool) { return fencedBlock(text, "xml") }},
		{name: "tag-span", apply: tagSpan},
		{name: "cleanup", apply: cleanupXML},
	}
}

// tagSpan scans for the first position where a complete element can be
// tokenized, and returns the minimal span up to the matching closing tag.
func tagSpan(text string) (string, bool) {
	for start := 0; start < len(text); {
		idx := strings.IndexByte(text[start:], '<')
		if idx == -1 {
			return "", false
		}
		pos := start + idx
		if span, ok := scanElement(text[pos:]); ok {
			return span, true
		}
		start = pos + 1
	}
	return "", false
}

// scanElement tokenizes from the start of text until the root element
// closes, and returns the consumed span. A leading XML declaration or
// comment is included in the span.
func scanElement(text string) (string, bool) {
	dec := xml.NewDecoder(strings.NewReader(text))
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				return text[:dec.InputOffset()], true
			}
		}
	}
}

var unquotedAttribute = regexp.MustCompile(`(\s+)([a-zA-Z][a-zA-Z0-9_-]*)=([^"'\s>]+)`)

// cleanupXML repairs the common damage seen in generated XML (byte-order
// mark, bare ampersands, unquoted attribute values) and then re-runs the
// span scan on the cleaned text.
func cleanupXML(text string) (string, bool) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "\xef\xbb\xbf")
	cleaned = strings.ReplaceAll(cleaned, "&", "&amp;")
	cleaned = strings.ReplaceAll(cleaned, "&amp;amp;", "&amp;")
	cleaned = unquotedAttribute.ReplaceAllString(cleaned, `$1$2="$3"`)
	return tagSpan(cleaned)
}
