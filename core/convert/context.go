package convert

import (
	"github.com/typecast-ai/typecast/providers/observability"
)

// Context carries the policies of one top-level conversion. It is immutable
// for the duration of the conversion and threaded by reference through
// every recursive step; concurrent conversions must each use their own.
type Context struct {
	// Strict demands exact scalar kinds and disables all implicit
	// coercions. Default true.
	Strict bool

	// IgnoreExtraFields discards mapping keys no declared field covers
	// instead of failing. Default true.
	IgnoreExtraFields bool

	// Observer receives the engine's few log records. Default silent.
	Observer observability.Observer
}

// Option configures a Context.
type Option func(*Context)

// WithFlexibleMode enables the narrow set of implicit scalar coercions.
func WithFlexibleMode() Option {
	return func(c *Context) { c.Strict = false }
}

// WithExtraFieldErrors makes unknown mapping keys a conversion failure.
func WithExtraFieldErrors() Option {
	return func(c *Context) { c.IgnoreExtraFields = false }
}

// WithObserver injects a log sink.
func WithObserver(observer observability.Observer) Option {
	return func(c *Context) {
		if observer != nil {
			c.Observer = observer
		}
	}
}

// NewContext builds a Context with the default policies (strict mode on,
// extra fields ignored, no logging) and applies the given options.
func NewContext(opts ...Option) *Context {
	ctx := &Context{
		Strict:            true,
		IgnoreExtraFields: true,
		Observer:          observability.Noop(),
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}
