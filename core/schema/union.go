package schema

import "reflect"

// Union is implemented by the generic union containers. Reflection detects
// union fields through this interface; the returned types are the declared
// alternatives, in order, and the order decides conversion precedence.
type Union interface {
	UnionTypes() []reflect.Type
}

// Union2 declares a two-alternative union field. Conversion tries A first,
// then B, and stores the winning value in Value.
//
//	type Payment struct {
//	    Amount schema.Union2[int, string] `json:"amount"`
//	}
type Union2[A, B any] struct {
	Value any
}

// UnionTypes implements Union.
func (Union2[A, B]) UnionTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B]()}
}

// Union3 declares a three-alternative union field, tried in order A, B, C.
type Union3[A, B, C any] struct {
	Value any
}

// UnionTypes implements Union.
func (Union3[A, B, C]) UnionTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()}
}

var unionType = reflect.TypeOf((*Union)(nil)).Elem()
