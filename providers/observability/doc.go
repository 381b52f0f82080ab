// Package observability defines the logging surface the conversion pipeline
// accepts from its caller. The core never logs on its own behalf unless an
// Observer is injected; the default is silence.
package observability
