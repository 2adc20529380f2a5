package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// ChatAPI is the slice of the OpenAI client the generator depends on.
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIConfig struct {
	APIKey string
	// BaseURL points the client at any OpenAI-compatible endpoint.
	BaseURL   string
	Model     string
	MaxTokens int
}

// OpenAIGenerator summarizes chunks with the chat completions API.
type OpenAIGenerator struct {
	api       ChatAPI
	model     string
	maxTokens int
}

func NewOpenAIGenerator(cfg OpenAIConfig) *OpenAIGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return NewOpenAIGeneratorWithAPI(openai.NewClientWithConfig(clientCfg), cfg.Model, cfg.MaxTokens)
}

func NewOpenAIGeneratorWithAPI(api ChatAPI, model string, maxTokens int) *OpenAIGenerator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &OpenAIGenerator{
		api:       api,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Generate returns the model's summary of text.
func (g *OpenAIGenerator) Generate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	resp, err := g.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", ErrEmptyResponse
	}

	return summary, nil
}
