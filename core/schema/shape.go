package schema

import "reflect"

// Variant identifies which shape a value is expected to take. The set is
// closed; the conversion engine dispatches on it with an exhaustive switch.
type Variant int

const (
	VariantPrimitive Variant = iota
	VariantOptional
	VariantList
	VariantUnion
	VariantEnum
	VariantComposite
)

// String returns a human-readable variant name.
func (v Variant) String() string {
	switch v {
	case VariantPrimitive:
		return "primitive"
	case VariantOptional:
		return "optional"
	case VariantList:
		return "list"
	case VariantUnion:
		return "union"
	case VariantEnum:
		return "enum"
	case VariantComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Primitive enumerates the scalar kinds a primitive shape can demand.
type Primitive int

const (
	PrimitiveString Primitive = iota
	PrimitiveInt
	PrimitiveFloat
	PrimitiveBool
)

// String returns a human-readable kind name.
func (p Primitive) String() string {
	switch p {
	case PrimitiveString:
		return "string"
	case PrimitiveInt:
		return "integer"
	case PrimitiveFloat:
		return "number"
	case PrimitiveBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Shape describes an expected target shape. Exactly one variant-specific
// field group is populated, selected by Variant. Shapes are immutable after
// reflection.
type Shape struct {
	Variant Variant

	// GoType is the concrete Go type this shape constructs.
	GoType reflect.Type

	// Primitive is set for VariantPrimitive and carries the scalar kind.
	// For VariantEnum it is the kind of the enum's declared values.
	Primitive Primitive

	// Inner is set for VariantOptional.
	Inner *Shape

	// Element is set for VariantList.
	Element *Shape

	// Alternatives is set for VariantUnion, in declaration order. The
	// order is significant: conversion tries alternatives first to last.
	Alternatives []*Shape

	// Values is set for VariantEnum and holds the allowed values, typed
	// per Primitive.
	Values []any

	// Fields is set for VariantComposite, in struct declaration order.
	Fields []Field
}

// Field describes one named field of a composite shape.
type Field struct {
	// Name is the wire name used for matching keys in a parsed mapping.
	Name string

	// GoName is the declared Go field name.
	GoName string

	// Index is the field's position in the Go struct.
	Index int

	// Shape is the field's expected shape.
	Shape *Shape

	// Description is free text carried for prompt generation only.
	Description string

	// Required forces presence even when Shape is optional.
	Required bool

	// HasDefault reports whether Default carries a declared default.
	HasDefault bool

	// Default is the declared default, already typed for the Go field, so
	// binding it is a plain assignment.
	Default reflect.Value
}

// FieldByName returns the field with the given wire name.
func (s *Shape) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
