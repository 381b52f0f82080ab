package convert

import (
	"fmt"
	"reflect"

	"github.com/typecast-ai/typecast/core/schema"
	"github.com/typecast-ai/typecast/core/tree"
	"github.com/typecast-ai/typecast/providers/observability"
)

// Struct converts a parsed mapping against a composite shape and returns
// the built struct instance as any. It is a convenience wrapper over Value
// for callers that know the root is composite.
func Struct(value tree.Value, shape *schema.Shape, ctx *Context) (any, error) {
	v, err := Value(value, shape, ctx)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// convertComposite builds a struct instance from a mapping node. Declared
// fields resolve in declaration order; unknown keys are handled after all
// declared fields, in document order.
func convertComposite(value tree.Value, shape *schema.Shape, ctx *Context, path []string) (reflect.Value, error) {
	obj, ok := value.(*tree.Object)
	if !ok {
		return reflect.Value{}, failAt(path, ErrExpectedObject, fmt.Sprintf("got %s", value.Kind()))
	}

	out := reflect.New(shape.GoType).Elem()

	for _, field := range shape.Fields {
		fieldPath := append(append([]string(nil), path...), field.Name)

		raw, present := obj.Get(field.Name)
		if !present {
			switch {
			case field.HasDefault:
				out.Field(field.Index).Set(field.Default)
			case field.Shape.Variant == schema.VariantOptional && !field.Required:
				// Zero value is the nil pointer; nothing to bind.
			default:
				return reflect.Value{}, failAt(fieldPath, ErrMissingField, "")
			}
			continue
		}

		// An explicit null binds the declared default when one exists.
		if raw.Kind() == tree.KindNull && field.HasDefault {
			out.Field(field.Index).Set(field.Default)
			continue
		}

		v, err := coerce(raw, field.Shape, ctx, fieldPath)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Field(field.Index).Set(v)
	}

	declared := make(map[string]bool, len(shape.Fields))
	for _, field := range shape.Fields {
		declared[field.Name] = true
	}
	for _, member := range obj.Members {
		if declared[member.Key] {
			continue
		}
		if !ctx.IgnoreExtraFields {
			return reflect.Value{}, failAt(path, ErrUnexpectedField, member.Key)
		}
		ctx.Observer.Debug("discarding extra field",
			observability.String("field", member.Key),
			observability.String("type", shape.GoType.String()))
	}

	return out, nil
}
