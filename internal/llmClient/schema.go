package llmclient

import genai "google.golang.org/genai"

type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
)

// Schema is the subset of JSON schema both providers understand for
// structured replies.
type Schema struct {
	Type       SchemaType
	Properties map[string]*Schema
	// Order keeps property order stable in prompts and provider payloads.
	Order    []string
	Items    *Schema
	Required []string
}

func StringArray() *Schema {
	return &Schema{Type: TypeArray, Items: &Schema{Type: TypeString}}
}

func (s *Schema) propertyNames() []string {
	if len(s.Order) > 0 {
		return s.Order
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	return names
}

// Genai converts s into the schema type of the Gemini SDK.
func (s *Schema) Genai() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{Type: genaiType(s.Type)}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for _, name := range s.propertyNames() {
			out.Properties[name] = s.Properties[name].Genai()
		}
		out.PropertyOrdering = append([]string(nil), s.propertyNames()...)
	}
	if s.Items != nil {
		out.Items = s.Items.Genai()
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	return out
}

func genaiType(t SchemaType) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeArray:
		return genai.TypeArray
	case TypeInteger:
		return genai.TypeInteger
	case TypeNumber:
		return genai.TypeNumber
	case TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

// JSONSchema renders s as a plain JSON schema document. Objects are closed
// so strict structured-output modes accept them.
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{"type": string(s.Type)}
	if s.Type == TypeObject {
		props := make(map[string]any, len(s.Properties))
		for _, name := range s.propertyNames() {
			props[name] = s.Properties[name].JSONSchema()
		}
		out["properties"] = props
		out["additionalProperties"] = false
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if len(s.Required) > 0 {
		out["required"] = append([]string(nil), s.Required...)
	}
	return out
}
