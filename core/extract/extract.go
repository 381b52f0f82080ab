package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/typecast-ai/typecast/core/tree"
	"github.com/typecast-ai/typecast/internal/utils"
	"github.com/typecast-ai/typecast/providers/observability"
)

// Strategy selects the structured-text grammar to extract, and with it the
// tactic sequence and the tree parser.
type Strategy string

const (
	JSON Strategy = "json"
	XML  Strategy = "xml"
)

// Options configures one extraction call.
type Options struct {
	arrayRoot         bool
	htmlPreprocessing bool
	observer          observability.Observer
}

// Option configures Options.
type Option func(*Options)

// WithArrayRoot enables the array-span tactic, for callers whose target
// shape is a top-level list. JSON only; it runs after every other tactic.
func WithArrayRoot() Option {
	return func(o *Options) { o.arrayRoot = true }
}

// WithHTMLPreprocessing converts HTML-looking input to markdown before the
// tactics run, so payloads wrapped in markup become fenced code blocks the
// fence tactic can find.
func WithHTMLPreprocessing() Option {
	return func(o *Options) { o.htmlPreprocessing = true }
}

// WithObserver injects a log sink; the extractor logs the winning tactic at
// debug level and nothing else.
func WithObserver(observer observability.Observer) Option {
	return func(o *Options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func newOptions(opts []Option) *Options {
	o := &Options{observer: observability.Noop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// tactic is one fallback method. apply returns a candidate payload; the
// cascade validates candidates against the target grammar, so tactics never
// need to guarantee validity themselves.
type tactic struct {
	name  string
	apply func(text string) (string, bool)
}

// Payload runs the tactic cascade and returns the cleaned payload string.
func Payload(text string, strategy Strategy, opts ...Option) (string, error) {
	payload, _, err := run(text, strategy, newOptions(opts))
	return payload, err
}

// Tree runs the tactic cascade and returns both the cleaned payload and its
// parsed tree, saving callers a second parse.
func Tree(text string, strategy Strategy, opts ...Option) (string, tree.Value, error) {
	return run(text, strategy, newOptions(opts))
}

func run(text string, strategy Strategy, o *Options) (string, tree.Value, error) {
	if o.htmlPreprocessing {
		text = preprocessHTML(text)
	}

	var (
		tactics []tactic
		parse   func(string) (tree.Value, error)
	)
	switch strategy {
	case JSON:
		tactics = jsonTactics(o.arrayRoot)
		parse = tree.DecodeJSON
	case XML:
		tactics = xmlTactics()
		parse = tree.DecodeXML
	default:
		return "", nil, fmt.Errorf("typecast: unknown extraction strategy %q", strategy)
	}

	attempts := 0
	var lastErr error
	for _, tc := range tactics {
		attempts++
		candidate, ok := tc.apply(text)
		if !ok {
			continue
		}
		parsed, err := parse(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		o.observer.Debug("extraction tactic succeeded",
			observability.String("strategy", string(strategy)),
			observability.String("tactic", tc.name),
			observability.String("payload", utils.TruncateString(candidate, 120)))
		return candidate, parsed, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no tactic produced a candidate payload")
	}
	return "", nil, &ExtractionError{Strategy: strategy, Attempts: attempts, Err: lastErr}
}

// fencedBlock finds a markdown code fence, preferring one tagged with the
// format name over an untagged fence, and returns its inner content.
func fencedBlock(text, format string) (string, bool) {
	for _, marker := range []string{"```" + format, "```"} {
		idx := strings.Index(text, marker)
		if idx == -1 {
			continue
		}
		rest := text[idx+len(marker):]
		nl := strings.IndexByte(rest, '\n')
		if nl == -1 {
			continue
		}
		body := rest[nl+1:]
		end := strings.Index(body, "```")
		if end == -1 {
			continue
		}
		content := strings.TrimSpace(body[:end])
		if content != "" {
			return content, true
		}
	}
	return "", false
}
