package ai

import (
	"context"
	"fmt"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
)

// VertexGemini extracts with a Gemini model on Vertex AI, sending the
// document inline as a blob next to the prompt.
type VertexGemini struct {
	client *vertexgenai.Client
	model  contentGenerator
}

// contentGenerator is satisfied by *genai.GenerativeModel
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...vertexgenai.Part) (*vertexgenai.GenerateContentResponse, error)
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	c, err := vertexgenai.NewClient(ctx, projectID, location)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-2.0-flash-001"
	}

	m := c.GenerativeModel(modelName)
	m.SetTemperature(extractionTemperature)
	m.SetMaxOutputTokens(extractionMaxTokens)
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error {
	if v.client == nil {
		return nil
	}
	return v.client.Close()
}

func (v *VertexGemini) Configured() bool {
	return v != nil && v.model != nil
}

func (v *VertexGemini) Extract(ctx context.Context, prompt, _ string, mimeType string, data []byte) (string, error) {
	resp, err := v.model.GenerateContent(ctx,
		vertexgenai.Text(prompt),
		vertexgenai.Blob{MIMEType: mimeType, Data: data},
	)
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	var sb strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
