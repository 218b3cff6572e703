// Package gemini implements the text and visual oracles on top of the
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	DefaultModel       = "gemini-3-pro-preview"
	DefaultVisualModel = "gemini-2.5-flash-image"

	jsonMIMEType = "application/json"
)

type Config struct {
	APIKey      string
	Model       string
	VisualModel string
	// Endpoint overrides the API host, mostly for proxies.
	Endpoint string
}

type generateFunc func(ctx context.Context, model *genai.GenerativeModel, parts ...genai.Part) (*genai.GenerateContentResponse, error)

type Oracle struct {
	client      *genai.Client
	model       string
	visualModel string

	newModel func(name string) *genai.GenerativeModel
	generate generateFunc
}

var (
	_ ports.Oracle       = (*Oracle)(nil)
	_ ports.VisualOracle = (*Oracle)(nil)
)

func New(ctx context.Context, cfg Config) (*Oracle, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini api key is empty")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	o := newOracle(cfg, client.GenerativeModel, func(ctx context.Context, model *genai.GenerativeModel, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
		return model.GenerateContent(ctx, parts...)
	})
	o.client = client

	return o, nil
}

func newOracle(cfg Config, newModel func(string) *genai.GenerativeModel, generate generateFunc) *Oracle {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	visualModel := cfg.VisualModel
	if visualModel == "" {
		visualModel = DefaultVisualModel
	}

	return &Oracle{model: model, visualModel: visualModel, newModel: newModel, generate: generate}
}

func (o *Oracle) Close() error {
	if o.client == nil {
		return nil
	}

	return o.client.Close()
}

// Generate sends one prompt and asks for JSON matching the request schema.
func (o *Oracle) Generate(ctx context.Context, req ports.OracleRequest) (ports.OracleResponse, error) {
	model := o.newModel(o.model)
	if req.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemInstruction)}}
	}
	if req.Schema != nil {
		model.ResponseMIMEType = jsonMIMEType
		model.ResponseSchema = toSchema(req.Schema)
	}

	resp, err := o.generate(ctx, model, genai.Text(req.Prompt))
	if err != nil {
		return ports.OracleResponse{}, fmt.Errorf("%w: gemini %s: %w", domain.ErrTransportFailure, o.model, err)
	}

	return ports.OracleResponse{Text: responseText(resp), Model: o.model}, nil
}

func (o *Oracle) GenerateImage(ctx context.Context, prompt string) (ports.Image, error) {
	return o.image(ctx, genai.Text(prompt))
}

func (o *Oracle) EditImage(ctx context.Context, source ports.Image, prompt string) (ports.Image, error) {
	mimeType := source.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}

	return o.image(ctx, genai.Blob{MIMEType: mimeType, Data: source.Data}, genai.Text(prompt))
}

func (o *Oracle) image(ctx context.Context, parts ...genai.Part) (ports.Image, error) {
	resp, err := o.generate(ctx, o.newModel(o.visualModel), parts...)
	if err != nil {
		return ports.Image{}, fmt.Errorf("%w: gemini %s: %w", domain.ErrTransportFailure, o.visualModel, err)
	}

	for _, part := range firstCandidateParts(resp) {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			return ports.Image{MIMEType: blob.MIMEType, Data: blob.Data}, nil
		}
	}

	return ports.Image{}, fmt.Errorf("%w: gemini %s returned no image", domain.ErrMalformedGeneration, o.visualModel)
}

// responseText joins the text parts of the first candidate. An empty string
// is returned as-is and left for the contract to reject.
func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, part := range firstCandidateParts(resp) {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return b.String()
}

func firstCandidateParts(resp *genai.GenerateContentResponse) []genai.Part {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}

	return resp.Candidates[0].Content.Parts
}
