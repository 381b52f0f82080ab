// Package prompt renders a reflected shape into a natural-language output
// specification suitable for embedding into a generation prompt: a markdown
// field list followed by a skeleton JSON example. The rendering consumes
// only field descriptors, so descriptions, defaults and enum values declared
// in struct tags all surface in the generated text.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/typecast-ai/typecast/core/schema"
	"github.com/typecast-ai/typecast/internal/utils"
)

// Render produces the output specification for a composite shape.
func Render(shape *schema.Shape) (string, error) {
	if shape == nil || shape.Variant != schema.VariantComposite {
		return "", fmt.Errorf("typecast: prompt rendering requires a composite shape, got %v", shape)
	}

	var b strings.Builder
	b.WriteString("## Output Format\n\n")
	b.WriteString("Respond with a single JSON object containing the following fields:\n\n")
	for _, field := range shape.Fields {
		writeField(&b, field)
	}
	b.WriteString("\n### Example\n\n```json\n")
	writeSkeleton(&b, shape, 0)
	b.WriteString("\n```\n")
	return b.String(), nil
}

func writeField(b *strings.Builder, field schema.Field) {
	fmt.Fprintf(b, "- `%s` (%s, %s", field.Name, typePhrase(field.Shape), presence(field))
	if field.HasDefault {
		fmt.Fprintf(b, ", default: %s", utils.JSONToString(field.Default.Interface()))
	}
	b.WriteString(")")
	if field.Description != "" {
		b.WriteString(": ")
		b.WriteString(field.Description)
	}
	b.WriteString("\n")
}

func presence(field schema.Field) string {
	if field.Required {
		return "required"
	}
	if field.Shape.Variant == schema.VariantOptional || field.HasDefault {
		return "optional"
	}
	return "required"
}

// typePhrase describes a shape in prose. Optionality is reported per field,
// not here, so an optional shape reads as its inner type.
func typePhrase(s *schema.Shape) string {
	switch s.Variant {
	case schema.VariantPrimitive:
		return s.Primitive.String()
	case schema.VariantOptional:
		return typePhrase(s.Inner)
	case schema.VariantList:
		return "list of " + typePhrase(s.Element)
	case schema.VariantUnion:
		parts := make([]string, len(s.Alternatives))
		for i, alt := range s.Alternatives {
			parts[i] = typePhrase(alt)
		}
		return strings.Join(parts, " or ")
	case schema.VariantEnum:
		parts := make([]string, len(s.Values))
		for i, v := range s.Values {
			parts[i] = utils.JSONToString(v)
		}
		return "one of " + strings.Join(parts, " | ")
	case schema.VariantComposite:
		return "object"
	default:
		return "unknown"
	}
}

// writeSkeleton emits a minimal example document: placeholder scalars, one
// element per list, the first alternative of a union, the first allowed
// value of an enum.
func writeSkeleton(b *strings.Builder, s *schema.Shape, depth int) {
	switch s.Variant {
	case schema.VariantComposite:
		b.WriteString("{\n")
		for i, field := range s.Fields {
			b.WriteString(strings.Repeat("  ", depth+1))
			b.WriteString(strconv.Quote(field.Name))
			b.WriteString(": ")
			writeSkeleton(b, field.Shape, depth+1)
			if i < len(s.Fields)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("}")
	case schema.VariantOptional:
		writeSkeleton(b, s.Inner, depth)
	case schema.VariantList:
		b.WriteString("[")
		writeSkeleton(b, s.Element, depth)
		b.WriteString("]")
	case schema.VariantUnion:
		writeSkeleton(b, s.Alternatives[0], depth)
	case schema.VariantEnum:
		b.WriteString(utils.JSONToString(s.Values[0]))
	case schema.VariantPrimitive:
		switch s.Primitive {
		case schema.PrimitiveString:
			b.WriteString(`"..."`)
		case schema.PrimitiveInt:
			b.WriteString("0")
		case schema.PrimitiveFloat:
			b.WriteString("0.0")
		case schema.PrimitiveBool:
			b.WriteString("false")
		}
	}
}
