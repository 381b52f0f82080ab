// Package schema reflects caller-declared struct types into an explicit
// shape tree the conversion engine dispatches on. Reflection runs once per
// distinct type; results are memoized process-wide and are read-only after
// construction, so shapes are safe to share across goroutines.
//
// Supported field annotations, via the `typecast` struct tag:
//
//	typecast:"description=A short field description"
//	typecast:"enum=red,enum=green,enum=blue"
//	typecast:"default=unknown"
//	typecast:"required"
//
// Field wire names come from the `json` tag, falling back to the Go field
// name. Fields tagged `json:"-"` and unexported fields are ignored.
package schema
