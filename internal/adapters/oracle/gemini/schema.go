package gemini

import (
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/google/generative-ai-go/genai"
)

var schemaTypes = map[ports.SchemaType]genai.Type{
	ports.SchemaObject: genai.TypeObject,
	ports.SchemaArray:  genai.TypeArray,
	ports.SchemaString: genai.TypeString,
	ports.SchemaNumber: genai.TypeNumber,
}

func toSchema(schema *ports.Schema) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        schemaTypes[schema.Type],
		Description: schema.Description,
		Required:    schema.Required,
		Enum:        schema.Enum,
		Items:       toSchema(schema.Items),
	}
	if len(schema.Enum) > 0 {
		out.Format = "enum"
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for name, property := range schema.Properties {
			out.Properties[name] = toSchema(property)
		}
	}

	return out
}
