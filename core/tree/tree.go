package tree

import (
	"encoding/json"
	"strings"
)

// Kind identifies the concrete type of a tree node.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
)

// String returns a human-readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Value is a node in a parsed value tree. The closed set of implementations
// is Object, Array, String, Number, Bool and Null.
type Value interface {
	Kind() Kind
}

// Member is a single key/value pair of an Object, in document order.
type Member struct {
	Key   string
	Value Value
}

// Object is a mapping node. Members preserve the key order of the source
// document; keys are unique (a duplicate key overwrites in place).
type Object struct {
	Members []Member
}

// Kind implements Value.
func (o *Object) Kind() Kind { return KindObject }

// Get returns the value bound to key, if present.
func (o *Object) Get(key string) (Value, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Set binds key to value, replacing an existing member in place or
// appending a new one.
func (o *Object) Set(key string, value Value) {
	for i, m := range o.Members {
		if m.Key == key {
			o.Members[i].Value = value
			return
		}
	}
	o.Members = append(o.Members, Member{Key: key, Value: value})
}

// Keys returns the member keys in document order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, m := range o.Members {
		keys[i] = m.Key
	}
	return keys
}

// Array is a sequence node preserving element order.
type Array struct {
	Items []Value
}

// Kind implements Value.
func (a *Array) Kind() Kind { return KindArray }

// String is a scalar string node.
type String string

// Kind implements Value.
func (String) Kind() Kind { return KindString }

// Number is a scalar numeric node holding the literal form from the source,
// so "30" and "30.0" remain distinguishable.
type Number string

// Kind implements Value.
func (Number) Kind() Kind { return KindNumber }

// IsInt reports whether the literal has no fractional or exponent part.
func (n Number) IsInt() bool {
	return !strings.ContainsAny(string(n), ".eE")
}

// Int64 returns the value as an int64. It fails for fractional literals.
func (n Number) Int64() (int64, error) {
	return json.Number(n).Int64()
}

// Float64 returns the value as a float64.
func (n Number) Float64() (float64, error) {
	return json.Number(n).Float64()
}

// Bool is a scalar boolean node.
type Bool bool

// Kind implements Value.
func (Bool) Kind() Kind { return KindBool }

// Null is the explicit null node.
type Null struct{}

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }
