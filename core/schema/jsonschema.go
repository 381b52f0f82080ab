package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Document is a JSON Schema rendering of a shape, used for prompt
// generation and for standalone payload validation. It covers the subset of
// the standard the shape model can express.
type Document struct {
	// Type is a single type name, or a list when null is also allowed.
	Type        any                  `json:"type,omitempty"`
	Description string               `json:"description,omitempty"`
	Required    []string             `json:"required,omitempty"`
	Properties  map[string]*Document `json:"properties,omitempty"`
	Items       *Document            `json:"items,omitempty"`
	Enum        []any                `json:"enum,omitempty"`
	Default     any                  `json:"default,omitempty"`
	OneOf       []*Document          `json:"oneOf,omitempty"`
}

// JSONSchema renders a shape into a JSON Schema document.
func JSONSchema(s *Shape) *Document {
	switch s.Variant {
	case VariantPrimitive:
		return &Document{Type: s.Primitive.String()}

	case VariantOptional:
		doc := JSONSchema(s.Inner)
		if name, ok := doc.Type.(string); ok {
			doc.Type = []string{name, "null"}
		}
		return doc

	case VariantList:
		return &Document{Type: "array", Items: JSONSchema(s.Element)}

	case VariantUnion:
		alternatives := make([]*Document, len(s.Alternatives))
		for i, alt := range s.Alternatives {
			alternatives[i] = JSONSchema(alt)
		}
		return &Document{OneOf: alternatives}

	case VariantEnum:
		return &Document{Type: s.Primitive.String(), Enum: s.Values}

	case VariantComposite:
		doc := &Document{Type: "object", Properties: make(map[string]*Document)}
		for _, field := range s.Fields {
			fieldDoc := JSONSchema(field.Shape)
			fieldDoc.Description = field.Description
			if field.HasDefault {
				fieldDoc.Default = field.Default.Interface()
			}
			doc.Properties[field.Name] = fieldDoc

			if field.Required || (field.Shape.Variant != VariantOptional && !field.HasDefault) {
				doc.Required = append(doc.Required, field.Name)
			}
		}
		return doc

	default:
		return &Document{}
	}
}

// JSONString serializes the document, pretty-printed when indent is true.
func (d *Document) JSONString(indent ...bool) (string, error) {
	var (
		encoded []byte
		err     error
	)
	if len(indent) > 0 && indent[0] {
		encoded, err = json.MarshalIndent(d, "", "  ")
	} else {
		encoded, err = json.Marshal(d)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema document: %w", err)
	}
	return string(encoded), nil
}

// Compile builds a validator for the shape's JSON Schema document. The
// validator checks structural conformance of an untyped payload and is
// independent of the conversion engine's coercion rules; it is useful as a
// cheap pre-flight or for validating payloads outside the typed pipeline.
func Compile(s *Shape) (*jsonschema.Schema, error) {
	doc, err := JSONSchema(s).JSONString()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("shape.json", strings.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("shape.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return compiled, nil
}
