package convert

import (
	"errors"
	"fmt"
	"strings"
)

// Cause sentinels for conversion failures. Every *ConversionError wraps
// exactly one of these, so callers can classify failures with errors.Is.
var (
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrMissingField     = errors.New("missing required field")
	ErrUnexpectedField  = errors.New("unexpected field")
	ErrExpectedObject   = errors.New("expected object")
	ErrExpectedSequence = errors.New("expected sequence")
	ErrInvalidEnumValue = errors.New("not a valid enum value")
	ErrNoUnionMatch     = errors.New("no union alternative matched")
)

// ConversionError reports a value that did not conform to its expected
// shape. Path locates the value from the root of the conversion; list
// indices appear as decimal strings.
type ConversionError struct {
	Path   []string
	Cause  error
	Detail string
}

func (e *ConversionError) Error() string {
	at := "value"
	if len(e.Path) > 0 {
		at = strings.Join(e.Path, ".")
	}
	if e.Detail != "" {
		return fmt.Sprintf("typecast: %s: %s (%s)", at, e.Cause, e.Detail)
	}
	return fmt.Sprintf("typecast: %s: %s", at, e.Cause)
}

// Unwrap exposes the cause sentinel for errors.Is.
func (e *ConversionError) Unwrap() error { return e.Cause }

// failAt builds a ConversionError, copying the path so later appends by the
// caller cannot alias into the reported location.
func failAt(path []string, cause error, detail string) *ConversionError {
	return &ConversionError{
		Path:   append([]string(nil), path...),
		Cause:  cause,
		Detail: detail,
	}
}
