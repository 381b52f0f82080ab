package schema

import (
	"fmt"
	"reflect"
)

// SchemaError reports a declared type whose annotation cannot be mapped to
// any supported shape. It is raised at reflection time, before any value is
// converted, since it indicates a programming mistake rather than bad data.
type SchemaError struct {
	// Type is the Go type whose reflection failed.
	Type reflect.Type

	// Field names the offending struct field, when the failure is
	// attributable to one.
	Field string

	// Reason describes why the annotation is unsupported.
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("typecast: unsupported schema on %s.%s: %s", e.Type, e.Field, e.Reason)
	}
	return fmt.Sprintf("typecast: unsupported schema on %s: %s", e.Type, e.Reason)
}
