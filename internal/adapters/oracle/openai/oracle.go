// Package openai implements the text oracle on the OpenAI chat completions
// API, or any server that speaks it.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const DefaultModel = "gpt-4.1"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Oracle struct {
	client *openai.Client
	model  string
}

var _ ports.Oracle = (*Oracle)(nil)

func New(cfg Config) (*Oracle, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai api key is empty")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Oracle{client: openai.NewClientWithConfig(clientConfig), model: model}, nil
}

func (o *Oracle) Generate(ctx context.Context, req ports.OracleRequest) (ports.OracleResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstruction})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Prompt})

	chat := openai.ChatCompletionRequest{Model: o.model, Messages: messages}
	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = "response"
		}
		definition := toDefinition(req.Schema)
		chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        name,
				Description: req.Schema.Description,
				Schema:      &definition,
			},
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return ports.OracleResponse{}, fmt.Errorf("%w: openai %s: %w", domain.ErrTransportFailure, o.model, err)
	}

	out := ports.OracleResponse{Model: resp.Model}
	if out.Model == "" {
		out.Model = o.model
	}
	if len(resp.Choices) > 0 {
		out.Text = resp.Choices[0].Message.Content
	}

	return out, nil
}

var dataTypes = map[ports.SchemaType]jsonschema.DataType{
	ports.SchemaObject: jsonschema.Object,
	ports.SchemaArray:  jsonschema.Array,
	ports.SchemaString: jsonschema.String,
	ports.SchemaNumber: jsonschema.Number,
}

func toDefinition(schema *ports.Schema) jsonschema.Definition {
	def := jsonschema.Definition{
		Type:        dataTypes[schema.Type],
		Description: schema.Description,
		Enum:        schema.Enum,
		Required:    schema.Required,
	}
	if schema.Items != nil {
		items := toDefinition(schema.Items)
		def.Items = &items
	}
	if schema.Type == ports.SchemaObject {
		def.Properties = make(map[string]jsonschema.Definition, len(schema.Properties))
		for name, property := range schema.Properties {
			def.Properties[name] = toDefinition(property)
		}
	}

	return def
}
