package extract

import (
	"strings"
	"unicode"

	"github.com/kaptinlin/jsonrepair"

	"github.com/typecast-ai/typecast/core/tree"
)

func jsonTactics(arrayRoot bool) []tactic {
	tactics := []tactic{
		{name: "direct", apply: direct},
		{name: "fenced-block", apply: func(text string) (string, bool) { return fencedBlock(text, "json") }},
		{name: "object-span", apply: objectSpan},
		{name: "filter-repair", apply: func(text string) (string, bool) { return filterAndRepair(text, arrayRoot) }},
	}
	if arrayRoot {
		tactics = append(tactics, tactic{name: "array-span", apply: arraySpan})
	}
	return tactics
}

func direct(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	return trimmed, trimmed != ""
}

func objectSpan(text string) (string, bool) { return balancedSpan(text, '{', '}') }

func arraySpan(text string) (string, bool) { return balancedSpan(text, '[', ']') }

// balancedSpan returns the minimal text from the first opening delimiter to
// its matching closing delimiter, counting depth and ignoring delimiters
// inside string literals.
func balancedSpan(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// filterAndRepair strips characters outside the JSON grammar's allow-list
// and retries; when the filtered text still does not parse it goes through
// jsonrepair, which fixes the usual LLM damage (single quotes, trailing
// commas, unquoted keys). Repair will happily turn prose into a quoted
// string scalar, so only structured roots are accepted.
func filterAndRepair(text string, arrayRoot bool) (string, bool) {
	filtered := strings.TrimSpace(strings.Map(func(r rune) rune {
		if allowedJSONRune(r) {
			return r
		}
		return -1
	}, text))
	if filtered == "" {
		return "", false
	}

	if structuredRoot(filtered, arrayRoot) {
		if _, err := tree.DecodeJSON(filtered); err == nil {
			return filtered, true
		}
	}
	repaired, err := jsonrepair.JSONRepair(filtered)
	if err != nil || !structuredRoot(repaired, arrayRoot) {
		return "", false
	}
	return repaired, true
}

func structuredRoot(text string, arrayRoot bool) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	return trimmed[0] == '{' || (arrayRoot && trimmed[0] == '[')
}

func allowedJSONRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '{', '}', '[', ']', ':', ',', '"', '\'', '.', '-', '+', '_':
		return true
	}
	return false
}
