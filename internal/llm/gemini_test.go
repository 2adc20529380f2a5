package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	gen, err := NewGeminiGenerator(context.Background(), GeminiConfig{})

	assert.Nil(t, gen)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGeminiGenerator_Generate_EmptyText(t *testing.T) {
	gen := &GeminiGenerator{}

	_, err := gen.Generate(context.Background(), "")

	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Text("The report covers "),
				genai.Text("second quarter results. "),
			}}},
		},
	}

	text, err := responseText(resp)

	require.NoError(t, err)
	assert.Equal(t, "The report covers second quarter results.", text)
}

func TestResponseText_Empty(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"blank text", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := responseText(tt.resp)
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}
