package ports

import "context"

type SchemaType string

const (
	SchemaObject SchemaType = "object"
	SchemaArray  SchemaType = "array"
	SchemaString SchemaType = "string"
	SchemaNumber SchemaType = "number"
)

// Schema is a provider-neutral description of the JSON an oracle must emit.
// Adapters translate it to their own structured-output format.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
	Enum        []string
}

type OracleRequest struct {
	SystemInstruction string
	Prompt            string
	Schema            *Schema
	// SchemaName labels the schema for providers that require one.
	SchemaName string
}

type OracleResponse struct {
	Text  string
	Model string
}

type Oracle interface {
	Generate(ctx context.Context, req OracleRequest) (OracleResponse, error)
}

type Image struct {
	MIMEType string
	Data     []byte
}

type VisualOracle interface {
	GenerateImage(ctx context.Context, prompt string) (Image, error)
	EditImage(ctx context.Context, source Image, prompt string) (Image, error)
}
