package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bentito/lintfixLLM/token_management"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletionServer(t *testing.T, content string, withUsage bool, received *openai.ChatCompletionRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(received))

		response := openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  received.Model,
			Choices: []openai.ChatCompletionChoice{
				{
					Index:        0,
					Message:      openai.ChatCompletionMessage{Role: "assistant", Content: content},
					FinishReason: "stop",
				},
			},
		}
		if withUsage {
			response.Usage = openai.Usage{PromptTokens: 20, CompletionTokens: 8, TotalTokens: 28}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
}

// Test a successful chat completion against an OpenAI-compatible endpoint
func TestOpenAIChatCompletion_Success(t *testing.T) {
	var received openai.ChatCompletionRequest
	server := newCompletionServer(t, "```go\nreturn early\n```", true, &received)
	defer server.Close()

	tokenManagement := token_management.NewTokenManager()
	provider := NewOpenAIChatProvider(&OpenAIConfig{
		BaseURL:         server.URL + "/v1",
		Model:           "granite-3.0-8b-instruct",
		ApiKey:          "test-key",
		Temperature:     0.2,
		TopP:            1.0,
		TokenManagement: tokenManagement,
	})

	response, err := provider.ChatCompletion(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)

	assert.Equal(t, "```go\nreturn early\n```", response.Content)
	assert.Equal(t, 20, response.PromptTokens)
	assert.Equal(t, 8, response.CompletionTokens)

	assert.Equal(t, "granite-3.0-8b-instruct", received.Model)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Equal(t, "system prompt", received.Messages[0].Content)
	assert.Equal(t, "user", received.Messages[1].Role)
	assert.Equal(t, "user prompt", received.Messages[1].Content)

	total, input, output := tokenManagement.GetCurrentTokenUsage()
	assert.Equal(t, 28, total)
	assert.Equal(t, 20, input)
	assert.Equal(t, 8, output)
}

// Test that a reply without choices is an error
func TestOpenAIChatCompletion_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-test","object":"chat.completion","model":"m","choices":[]}`))
	}))
	defer server.Close()

	provider := NewOpenAIChatProvider(&OpenAIConfig{
		BaseURL: server.URL + "/v1",
		Model:   "granite-3.0-8b-instruct",
	})

	_, err := provider.ChatCompletion(context.Background(), "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

// Test that endpoint errors are wrapped, not swallowed
func TestOpenAIChatCompletion_EndpointError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	provider := NewOpenAIChatProvider(&OpenAIConfig{
		BaseURL: server.URL + "/v1",
		Model:   "gpt-4o",
		ApiKey:  "bad-key",
	})

	_, err := provider.ChatCompletion(context.Background(), "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion request failed")
}

// Test that the max tokens cap is forwarded only when set
func TestOpenAIChatCompletion_MaxTokensForwarded(t *testing.T) {
	var received openai.ChatCompletionRequest
	server := newCompletionServer(t, "ok", false, &received)
	defer server.Close()

	provider := NewOpenAIChatProvider(&OpenAIConfig{
		BaseURL:   server.URL + "/v1",
		Model:     "granite-3.0-8b-instruct",
		MaxTokens: 2048,
	})

	_, err := provider.ChatCompletion(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, 2048, received.MaxTokens)
}
