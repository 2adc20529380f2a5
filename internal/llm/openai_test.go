package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChatAPI struct {
	mock.Mock
}

func (m *MockChatAPI) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(openai.ChatCompletionResponse), args.Error(1)
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func TestOpenAIGenerator_Generate_Success(t *testing.T) {
	api := new(MockChatAPI)
	gen := NewOpenAIGeneratorWithAPI(api, "", 0)
	ctx := context.Background()

	api.On("CreateChatCompletion", ctx, mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		return req.Model == DefaultOpenAIModel &&
			req.MaxTokens == DefaultMaxTokens &&
			len(req.Messages) == 2 &&
			req.Messages[0].Content == SystemPrompt &&
			req.Messages[1].Content == "quarterly revenue grew"
	})).Return(chatResponse("  Revenue grew this quarter.\n"), nil)

	summary, err := gen.Generate(ctx, "quarterly revenue grew")

	require.NoError(t, err)
	assert.Equal(t, "Revenue grew this quarter.", summary)
	api.AssertExpectations(t)
}

func TestOpenAIGenerator_Generate_EmptyText(t *testing.T) {
	api := new(MockChatAPI)
	gen := NewOpenAIGeneratorWithAPI(api, "", 0)

	_, err := gen.Generate(context.Background(), " \n ")

	assert.ErrorIs(t, err, ErrEmptyText)
	api.AssertNotCalled(t, "CreateChatCompletion", mock.Anything, mock.Anything)
}

func TestOpenAIGenerator_Generate_APIError(t *testing.T) {
	api := new(MockChatAPI)
	gen := NewOpenAIGeneratorWithAPI(api, "gpt-test", 50)
	ctx := context.Background()
	apiErr := errors.New("rate limited")

	api.On("CreateChatCompletion", ctx, mock.Anything).Return(openai.ChatCompletionResponse{}, apiErr)

	_, err := gen.Generate(ctx, "some text")

	assert.ErrorIs(t, err, apiErr)
}

func TestOpenAIGenerator_Generate_EmptyChoices(t *testing.T) {
	api := new(MockChatAPI)
	gen := NewOpenAIGeneratorWithAPI(api, "", 0)
	ctx := context.Background()

	api.On("CreateChatCompletion", ctx, mock.Anything).Return(openai.ChatCompletionResponse{}, nil).Once()
	_, err := gen.Generate(ctx, "some text")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	api.On("CreateChatCompletion", ctx, mock.Anything).Return(chatResponse("   "), nil).Once()
	_, err = gen.Generate(ctx, "some text")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIGenerator_CompatibleEndpoint(t *testing.T) {
	var received openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("A short summary."))
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(OpenAIConfig{
		APIKey:    "test-key",
		BaseURL:   server.URL + "/v1/",
		Model:     "local-model",
		MaxTokens: 64,
	})

	summary, err := gen.Generate(context.Background(), "chunk of text")

	require.NoError(t, err)
	assert.Equal(t, "A short summary.", summary)
	assert.Equal(t, "local-model", received.Model)
	assert.Equal(t, 64, received.MaxTokens)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, received.Messages[0].Role)
	assert.Equal(t, "chunk of text", received.Messages[1].Content)
}
