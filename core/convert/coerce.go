package convert

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/typecast-ai/typecast/core/schema"
	"github.com/typecast-ai/typecast/core/tree"
)

// Value coerces a parsed tree against a shape and returns the constructed
// Go value. The shape may be of any variant; composite shapes build struct
// instances recursively.
func Value(value tree.Value, shape *schema.Shape, ctx *Context) (reflect.Value, error) {
	return coerce(value, shape, ctx, nil)
}

func coerce(value tree.Value, shape *schema.Shape, ctx *Context, path []string) (reflect.Value, error) {
	switch shape.Variant {
	case schema.VariantPrimitive:
		return coercePrimitive(value, shape, ctx, path)
	case schema.VariantOptional:
		return coerceOptional(value, shape, ctx, path)
	case schema.VariantList:
		return coerceList(value, shape, ctx, path)
	case schema.VariantUnion:
		return coerceUnion(value, shape, ctx, path)
	case schema.VariantEnum:
		return coerceEnum(value, shape, path)
	case schema.VariantComposite:
		return convertComposite(value, shape, ctx, path)
	default:
		return reflect.Value{}, failAt(path, ErrTypeMismatch, fmt.Sprintf("unhandled shape variant %v", shape.Variant))
	}
}

func coercePrimitive(value tree.Value, shape *schema.Shape, ctx *Context, path []string) (reflect.Value, error) {
	switch shape.Primitive {
	case schema.PrimitiveString:
		if s, ok := value.(tree.String); ok {
			return newString(shape.GoType, string(s)), nil
		}
		if !ctx.Strict {
			switch v := value.(type) {
			case tree.Number:
				return newString(shape.GoType, string(v)), nil
			case tree.Bool:
				return newString(shape.GoType, strconv.FormatBool(bool(v))), nil
			}
		}

	case schema.PrimitiveInt:
		if n, ok := value.(tree.Number); ok {
			if !n.IsInt() {
				return reflect.Value{}, failAt(path, ErrTypeMismatch, fmt.Sprintf("fractional number %s for integer field", string(n)))
			}
			i, err := n.Int64()
			if err != nil {
				return reflect.Value{}, failAt(path, ErrTypeMismatch, err.Error())
			}
			return newInt(shape.GoType, i, path)
		}
		if !ctx.Strict {
			if s, ok := value.(tree.String); ok {
				if i, err := strconv.ParseInt(strings.TrimSpace(string(s)), 10, 64); err == nil {
					return newInt(shape.GoType, i, path)
				}
				// A fractional numeric string never truncates to an
				// integer, in either mode.
				if _, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64); err == nil {
					return reflect.Value{}, failAt(path, ErrTypeMismatch, fmt.Sprintf("fractional value %q for integer field", string(s)))
				}
			}
		}

	case schema.PrimitiveFloat:
		if n, ok := value.(tree.Number); ok {
			f, err := n.Float64()
			if err != nil {
				return reflect.Value{}, failAt(path, ErrTypeMismatch, err.Error())
			}
			return newFloat(shape.GoType, f), nil
		}
		if !ctx.Strict {
			if s, ok := value.(tree.String); ok {
				if f, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64); err == nil {
					return newFloat(shape.GoType, f), nil
				}
			}
		}

	case schema.PrimitiveBool:
		if b, ok := value.(tree.Bool); ok {
			return newBool(shape.GoType, bool(b)), nil
		}
		if !ctx.Strict {
			if s, ok := value.(tree.String); ok {
				switch strings.ToLower(strings.TrimSpace(string(s))) {
				case "true":
					return newBool(shape.GoType, true), nil
				case "false":
					return newBool(shape.GoType, false), nil
				}
			}
		}
	}

	return reflect.Value{}, failAt(path, ErrTypeMismatch,
		fmt.Sprintf("cannot use %s as %s", value.Kind(), shape.Primitive))
}

func coerceOptional(value tree.Value, shape *schema.Shape, ctx *Context, path []string) (reflect.Value, error) {
	if value == nil || value.Kind() == tree.KindNull {
		return reflect.Zero(shape.GoType), nil
	}
	inner, err := coerce(value, shape.Inner, ctx, path)
	if err != nil {
		return reflect.Value{}, err
	}
	ptr := reflect.New(shape.GoType.Elem())
	ptr.Elem().Set(inner)
	return ptr, nil
}

func coerceList(value tree.Value, shape *schema.Shape, ctx *Context, path []string) (reflect.Value, error) {
	arr, ok := value.(*tree.Array)
	if !ok {
		return reflect.Value{}, failAt(path, ErrExpectedSequence, fmt.Sprintf("got %s", value.Kind()))
	}

	if shape.GoType.Kind() == reflect.Array {
		if len(arr.Items) != shape.GoType.Len() {
			return reflect.Value{}, failAt(path, ErrTypeMismatch,
				fmt.Sprintf("got %d elements for a %d-element array", len(arr.Items), shape.GoType.Len()))
		}
		out := reflect.New(shape.GoType).Elem()
		for i, item := range arr.Items {
			v, err := coerce(item, shape.Element, ctx, append(path, strconv.Itoa(i)))
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(v)
		}
		return out, nil
	}

	out := reflect.MakeSlice(shape.GoType, 0, len(arr.Items))
	for i, item := range arr.Items {
		v, err := coerce(item, shape.Element, ctx, append(path, strconv.Itoa(i)))
		if err != nil {
			return reflect.Value{}, err
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

func coerceUnion(value tree.Value, shape *schema.Shape, ctx *Context, path []string) (reflect.Value, error) {
	reasons := make([]string, 0, len(shape.Alternatives))
	for _, alt := range shape.Alternatives {
		v, err := coerce(value, alt, ctx, path)
		if err == nil {
			out := reflect.New(shape.GoType).Elem()
			out.FieldByName("Value").Set(v)
			return out, nil
		}
		reasons = append(reasons, fmt.Sprintf("%s: %v", alt.GoType, err))
	}
	return reflect.Value{}, failAt(path, ErrNoUnionMatch, strings.Join(reasons, "; "))
}

func coerceEnum(value tree.Value, shape *schema.Shape, path []string) (reflect.Value, error) {
	scalar, ok := enumScalar(value, shape.Primitive)
	if !ok {
		return reflect.Value{}, failAt(path, ErrInvalidEnumValue,
			fmt.Sprintf("cannot use %s as %s", value.Kind(), shape.Primitive))
	}
	for _, allowed := range shape.Values {
		if allowed == scalar {
			return reflect.ValueOf(scalar).Convert(shape.GoType), nil
		}
	}
	return reflect.Value{}, failAt(path, ErrInvalidEnumValue, fmt.Sprintf("%v is not one of %v", scalar, shape.Values))
}

// enumScalar normalizes a scalar node to the Go representation used for
// declared enum values, without any flexible-mode conversion: enum matching
// is by exact value in both modes.
func enumScalar(value tree.Value, prim schema.Primitive) (any, bool) {
	switch prim {
	case schema.PrimitiveString:
		if s, ok := value.(tree.String); ok {
			return string(s), true
		}
	case schema.PrimitiveInt:
		if n, ok := value.(tree.Number); ok && n.IsInt() {
			if i, err := n.Int64(); err == nil {
				return i, true
			}
		}
	case schema.PrimitiveFloat:
		if n, ok := value.(tree.Number); ok {
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		}
	case schema.PrimitiveBool:
		if b, ok := value.(tree.Bool); ok {
			return bool(b), true
		}
	}
	return nil, false
}

func newString(t reflect.Type, s string) reflect.Value {
	v := reflect.New(t).Elem()
	v.SetString(s)
	return v
}

func newInt(t reflect.Type, n int64, path []string) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n < 0 {
			return reflect.Value{}, failAt(path, ErrTypeMismatch, fmt.Sprintf("negative value %d for unsigned field", n))
		}
		u := uint64(n)
		if v.OverflowUint(u) {
			return reflect.Value{}, failAt(path, ErrTypeMismatch, fmt.Sprintf("value %d overflows %s", n, t))
		}
		v.SetUint(u)
	default:
		if v.OverflowInt(n) {
			return reflect.Value{}, failAt(path, ErrTypeMismatch, fmt.Sprintf("value %d overflows %s", n, t))
		}
		v.SetInt(n)
	}
	return v, nil
}

func newFloat(t reflect.Type, f float64) reflect.Value {
	v := reflect.New(t).Elem()
	v.SetFloat(f)
	return v
}

func newBool(t reflect.Type, b bool) reflect.Value {
	v := reflect.New(t).Elem()
	v.SetBool(b)
	return v
}
