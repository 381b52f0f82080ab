package typecast

import (
	"reflect"

	"github.com/typecast-ai/typecast/core/convert"
	"github.com/typecast-ai/typecast/core/extract"
	"github.com/typecast-ai/typecast/core/prompt"
	"github.com/typecast-ai/typecast/core/schema"
	"github.com/typecast-ai/typecast/providers/observability"
)

// Strategy selects the structured-text grammar to extract.
type Strategy = extract.Strategy

const (
	// JSON is the default extraction strategy.
	JSON = extract.JSON
	// XML extracts and parses XML payloads instead.
	XML = extract.XML
)

// Options configures one extraction call.
type Options struct {
	strategy          Strategy
	flexible          bool
	extraFieldErrors  bool
	htmlPreprocessing bool
	observer          observability.Observer
}

// Option configures Options.
type Option func(*Options)

// WithStrategy selects the extraction strategy. The default is JSON.
func WithStrategy(strategy Strategy) Option {
	return func(o *Options) { o.strategy = strategy }
}

// WithFlexibleMode enables the narrow set of implicit scalar coercions
// during conversion (numeric text to numbers, "true"/"false" to booleans,
// numbers to strings). The default is strict: exact kinds only.
func WithFlexibleMode() Option {
	return func(o *Options) { o.flexible = true }
}

// WithExtraFieldErrors makes payload keys that match no declared field a
// conversion failure. By default extra keys are discarded.
func WithExtraFieldErrors() Option {
	return func(o *Options) { o.extraFieldErrors = true }
}

// WithHTMLPreprocessing converts HTML-looking input to markdown before
// extraction, so payloads wrapped in markup become fenced code blocks.
func WithHTMLPreprocessing() Option {
	return func(o *Options) { o.htmlPreprocessing = true }
}

// WithObserver injects a log sink. Both stages log at debug level only;
// the default is silence.
func WithObserver(observer observability.Observer) Option {
	return func(o *Options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func newOptions(opts []Option) *Options {
	o := &Options{strategy: JSON, observer: observability.Noop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Extract locates a structured payload in noisy text and converts it into a
// value of type T. The two stages fail independently: a text with no
// recoverable payload returns a *extract.ExtractionError, a payload whose
// structure does not fit T returns a *convert.ConversionError, and on any
// failure the zero value of T is returned with no partially-filled instance.
func Extract[T any](text string, opts ...Option) (T, error) {
	var zero T
	v, err := ExtractValue(text, reflect.TypeFor[T](), opts...)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// ExtractValue is the non-generic form of Extract for callers that carry the
// target as a reflect.Type. A pointer type builds its element and returns a
// pointer to it.
func ExtractValue(text string, t reflect.Type, opts ...Option) (any, error) {
	o := newOptions(opts)

	shape, err := schema.Reflect(t)
	if err != nil {
		return nil, err
	}

	exOpts := []extract.Option{extract.WithObserver(o.observer)}
	if o.htmlPreprocessing {
		exOpts = append(exOpts, extract.WithHTMLPreprocessing())
	}
	if o.strategy == JSON && shape.Variant == schema.VariantList {
		exOpts = append(exOpts, extract.WithArrayRoot())
	}

	_, parsed, err := extract.Tree(text, o.strategy, exOpts...)
	if err != nil {
		return nil, err
	}

	cOpts := []convert.Option{convert.WithObserver(o.observer)}
	if o.flexible {
		cOpts = append(cOpts, convert.WithFlexibleMode())
	}
	if o.extraFieldErrors {
		cOpts = append(cOpts, convert.WithExtraFieldErrors())
	}

	v, err := convert.Value(parsed, shape, convert.NewContext(cOpts...))
	if err != nil {
		return nil, err
	}

	// Reflection dereferences pointer roots; rebuild the caller's declared
	// pointer depth around the built value.
	for u := t; u.Kind() == reflect.Pointer; u = u.Elem() {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		v = ptr
	}
	return v.Interface(), nil
}

// CleanPayload runs only the extraction stage and returns the recovered
// payload text, without converting it into a typed value.
func CleanPayload(text string, strategy Strategy, opts ...Option) (string, error) {
	o := newOptions(opts)
	exOpts := []extract.Option{extract.WithObserver(o.observer)}
	if o.htmlPreprocessing {
		exOpts = append(exOpts, extract.WithHTMLPreprocessing())
	}
	return extract.Payload(text, strategy, exOpts...)
}

// Describe renders the output specification for T: a markdown field list
// and a skeleton JSON example, suitable for embedding into a generation
// prompt so responses arrive in the expected structure.
func Describe[T any]() (string, error) {
	shape, err := schema.For[T]()
	if err != nil {
		return "", err
	}
	return prompt.Render(shape)
}
