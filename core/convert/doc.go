// Package convert turns an untyped parsed value tree into an instance of a
// reflected shape. Coercion dispatches on the shape variant; composite
// shapes recurse through their fields. The whole engine is fail-fast: the
// first non-conforming value aborts the conversion and no partial instance
// is ever returned.
//
// Two policies govern a conversion, carried by Context: strict mode, which
// demands exact scalar kinds, and the extra-field policy for mapping keys
// no declared field covers. Flexible mode permits a narrow, fixed set of
// scalar conversions (numeric strings, textual booleans, number-to-string)
// and nothing else.
package convert
