package ai

import (
	"context"
	"errors"
	"testing"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	parts []vertexgenai.Part
	resp  *vertexgenai.GenerateContentResponse
	err   error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...vertexgenai.Part) (*vertexgenai.GenerateContentResponse, error) {
	f.parts = parts
	return f.resp, f.err
}

func answer(parts ...vertexgenai.Part) *vertexgenai.GenerateContentResponse {
	return &vertexgenai.GenerateContentResponse{
		Candidates: []*vertexgenai.Candidate{{Content: &vertexgenai.Content{Parts: parts}}},
	}
}

func TestVertexGeminiExtract(t *testing.T) {
	gen := &fakeGenerator{resp: answer(vertexgenai.Text("```json\n{\"name\":"), vertexgenai.Text("\"Ada\"}\n```"))}
	v := &VertexGemini{model: gen}
	require.True(t, v.Configured())

	text, err := v.Extract(context.Background(), "extract this", "", "application/pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "```json\n{\"name\":\"Ada\"}\n```", text)

	require.Len(t, gen.parts, 2)
	assert.Equal(t, vertexgenai.Text("extract this"), gen.parts[0])
	assert.Equal(t, vertexgenai.Blob{MIMEType: "application/pdf", Data: []byte("%PDF-1.4")}, gen.parts[1])
	assert.NoError(t, v.Close())
}

func TestVertexGeminiExtractFailures(t *testing.T) {
	t.Run("No candidates", func(t *testing.T) {
		v := &VertexGemini{model: &fakeGenerator{resp: &vertexgenai.GenerateContentResponse{}}}
		_, err := v.Extract(context.Background(), "p", "", "text/plain", []byte("cv"))
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("Only non-text parts", func(t *testing.T) {
		v := &VertexGemini{model: &fakeGenerator{resp: answer(vertexgenai.Blob{MIMEType: "image/png"})}}
		_, err := v.Extract(context.Background(), "p", "", "text/plain", []byte("cv"))
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("Upstream error is wrapped", func(t *testing.T) {
		quota := errors.New("rpc error: code = ResourceExhausted")
		v := &VertexGemini{model: &fakeGenerator{err: quota}}
		_, err := v.Extract(context.Background(), "p", "", "text/plain", []byte("cv"))
		assert.ErrorIs(t, err, quota)
	})

	t.Run("Unconfigured", func(t *testing.T) {
		var v *VertexGemini
		assert.False(t, v.Configured())
	})
}
