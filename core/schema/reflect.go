package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// For reflects the type parameter T into its shape. Results are memoized;
// see Reflect.
func For[T any]() (*Shape, error) {
	return Reflect(reflect.TypeFor[T]())
}

// cache memoizes reflection results keyed by type identity. Entries are
// never mutated after insertion, so concurrent readers only need the
// read lock.
var cache = struct {
	sync.RWMutex
	shapes map[reflect.Type]*Shape
}{shapes: make(map[reflect.Type]*Shape)}

// Reflect maps a declared Go type onto a shape tree. A pointer at the root
// is dereferenced, so T and *T reflect identically. Reflection fails with a
// *SchemaError when a type cannot be mapped to any supported shape; only
// successful results are cached.
func Reflect(t reflect.Type) (*Shape, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	cache.RLock()
	shape, ok := cache.shapes[t]
	cache.RUnlock()
	if ok {
		return shape, nil
	}

	cache.Lock()
	defer cache.Unlock()

	// Double-check after acquiring the write lock.
	if shape, ok := cache.shapes[t]; ok {
		return shape, nil
	}

	shape, err := reflectType(t, map[reflect.Type]bool{})
	if err != nil {
		return nil, err
	}
	cache.shapes[t] = shape
	return shape, nil
}

func reflectType(t reflect.Type, visiting map[reflect.Type]bool) (*Shape, error) {
	switch t.Kind() {
	case reflect.String:
		return &Shape{Variant: VariantPrimitive, GoType: t, Primitive: PrimitiveString}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Shape{Variant: VariantPrimitive, GoType: t, Primitive: PrimitiveInt}, nil

	case reflect.Float32, reflect.Float64:
		return &Shape{Variant: VariantPrimitive, GoType: t, Primitive: PrimitiveFloat}, nil

	case reflect.Bool:
		return &Shape{Variant: VariantPrimitive, GoType: t, Primitive: PrimitiveBool}, nil

	case reflect.Pointer:
		inner, err := reflectType(t.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		return &Shape{Variant: VariantOptional, GoType: t, Inner: inner}, nil

	case reflect.Slice, reflect.Array:
		element, err := reflectType(t.Elem(), visiting)
		if err != nil {
			return nil, err
		}
		return &Shape{Variant: VariantList, GoType: t, Element: element}, nil

	case reflect.Struct:
		if t.Implements(unionType) {
			return reflectUnion(t, visiting)
		}
		return reflectStruct(t, visiting)

	default:
		return nil, &SchemaError{Type: t, Reason: fmt.Sprintf("kind %s cannot be mapped to a shape", t.Kind())}
	}
}

func reflectUnion(t reflect.Type, visiting map[reflect.Type]bool) (*Shape, error) {
	alternatives := reflect.New(t).Elem().Interface().(Union).UnionTypes()
	if len(alternatives) == 0 {
		return nil, &SchemaError{Type: t, Reason: "union declares no alternatives"}
	}

	shapes := make([]*Shape, len(alternatives))
	for i, alt := range alternatives {
		shape, err := reflectType(alt, visiting)
		if err != nil {
			return nil, err
		}
		shapes[i] = shape
	}
	return &Shape{Variant: VariantUnion, GoType: t, Alternatives: shapes}, nil
}

func reflectStruct(t reflect.Type, visiting map[reflect.Type]bool) (*Shape, error) {
	if visiting[t] {
		return nil, &SchemaError{Type: t, Reason: "self-referential composite types are not supported"}
	}
	visiting[t] = true
	defer delete(visiting, t)

	shape := &Shape{Variant: VariantComposite, GoType: t}
	seen := make(map[string]bool)

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, skip := wireName(sf)
		if skip {
			continue
		}
		if seen[name] {
			return nil, &SchemaError{Type: t, Field: sf.Name, Reason: fmt.Sprintf("duplicate field name %q", name)}
		}
		seen[name] = true

		fieldShape, err := reflectType(sf.Type, visiting)
		if err != nil {
			return nil, err
		}

		field := Field{Name: name, GoName: sf.Name, Index: i, Shape: fieldShape}
		if err := applyFieldTag(t, sf, &field); err != nil {
			return nil, err
		}
		shape.Fields = append(shape.Fields, field)
	}
	return shape, nil
}

// wireName resolves a struct field's wire name from its json tag, falling
// back to the Go field name. The second result reports fields excluded via
// json:"-".
func wireName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	name := sf.Name
	if tag != "" {
		if comma := strings.Index(tag, ","); comma != -1 {
			if tag[:comma] != "" {
				name = tag[:comma]
			}
		} else {
			name = tag
		}
	}
	return name, false
}

// applyFieldTag parses the `typecast` struct tag and folds its settings into
// the field: description, enum values, a default, and a required marker.
func applyFieldTag(owner reflect.Type, sf reflect.StructField, field *Field) error {
	tag := sf.Tag.Get("typecast")
	if tag == "" {
		return nil
	}

	var enumRaw []string
	var defaultRaw string
	var hasDefault bool

	for _, item := range strings.Split(tag, ",") {
		key, value, found := strings.Cut(item, "=")
		switch {
		case found && key == "description":
			field.Description = value
		case found && key == "enum":
			enumRaw = append(enumRaw, value)
		case found && key == "default":
			defaultRaw = value
			hasDefault = true
		case !found && key == "required":
			field.Required = true
		}
	}

	if len(enumRaw) > 0 {
		if err := applyEnum(owner, sf, field, enumRaw); err != nil {
			return err
		}
	}
	if hasDefault {
		if err := applyDefault(owner, sf, field, defaultRaw); err != nil {
			return err
		}
	}
	return nil
}

func applyEnum(owner reflect.Type, sf reflect.StructField, field *Field, raw []string) error {
	primShape, optional, ok := innermostPrimitive(field.Shape)
	if !ok {
		return &SchemaError{Type: owner, Field: sf.Name, Reason: "enum tag requires a primitive field type"}
	}

	values := make([]any, len(raw))
	for i, r := range raw {
		v, err := parseScalar(primShape.Primitive, r)
		if err != nil {
			return &SchemaError{Type: owner, Field: sf.Name, Reason: fmt.Sprintf("invalid enum value %q: %v", r, err)}
		}
		values[i] = v
	}

	enum := &Shape{
		Variant:   VariantEnum,
		GoType:    primShape.GoType,
		Primitive: primShape.Primitive,
		Values:    values,
	}
	if optional {
		field.Shape = &Shape{Variant: VariantOptional, GoType: sf.Type, Inner: enum}
	} else {
		field.Shape = enum
	}
	return nil
}

func applyDefault(owner reflect.Type, sf reflect.StructField, field *Field, raw string) error {
	primShape, optional, ok := innermostPrimitive(field.Shape)
	if !ok {
		return &SchemaError{Type: owner, Field: sf.Name, Reason: "default tag requires a primitive field type"}
	}

	parsed, err := parseScalar(primShape.Primitive, raw)
	if err != nil {
		return &SchemaError{Type: owner, Field: sf.Name, Reason: fmt.Sprintf("invalid default value %q: %v", raw, err)}
	}

	value := reflect.ValueOf(parsed).Convert(primShape.GoType)
	if optional {
		ptr := reflect.New(primShape.GoType)
		ptr.Elem().Set(value)
		value = ptr
	}

	field.HasDefault = true
	field.Default = value
	return nil
}

// innermostPrimitive unwraps at most one optional layer and reports the
// primitive (or enum) shape underneath, if any.
func innermostPrimitive(s *Shape) (*Shape, bool, bool) {
	if s.Variant == VariantOptional {
		inner := s.Inner
		if inner.Variant == VariantPrimitive || inner.Variant == VariantEnum {
			return inner, true, true
		}
		return nil, true, false
	}
	if s.Variant == VariantPrimitive || s.Variant == VariantEnum {
		return s, false, true
	}
	return nil, false, false
}

func parseScalar(prim Primitive, raw string) (any, error) {
	switch prim {
	case PrimitiveString:
		return raw, nil
	case PrimitiveInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case PrimitiveFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case PrimitiveBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported primitive kind %v", prim)
	}
}
