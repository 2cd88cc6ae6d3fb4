package openai

import (
	"context"
	"fmt"

	"github.com/bentito/lintfixLLM/providers/contracts"
	"github.com/bentito/lintfixLLM/providers/models"
	contracts2 "github.com/bentito/lintfixLLM/token_management/contracts"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig implements the chat provider interface for any
// OpenAI-compatible endpoint, including local servers that expose
// /v1/chat/completions.
type OpenAIConfig struct {
	BaseURL         string
	Model           string
	ApiKey          string
	Temperature     float32
	TopP            float32
	MaxTokens       int
	TokenManagement contracts2.ITokenManagement

	client *openai.Client
}

// NewOpenAIChatProvider initializes a new OpenAI-compatible chat provider.
func NewOpenAIChatProvider(config *OpenAIConfig) contracts.IChatProvider {
	clientConfig := openai.DefaultConfig(config.ApiKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &OpenAIConfig{
		BaseURL:         config.BaseURL,
		Model:           config.Model,
		ApiKey:          config.ApiKey,
		Temperature:     config.Temperature,
		TopP:            config.TopP,
		MaxTokens:       config.MaxTokens,
		TokenManagement: config.TokenManagement,
		client:          openai.NewClientWithConfig(clientConfig),
	}
}

// ChatCompletion sends one synchronous chat request and returns the first
// choice's message content.
func (openAIProvider *OpenAIConfig) ChatCompletion(ctx context.Context, systemPrompt string, userPrompt string) (*models.ChatResponse, error) {
	req := openai.ChatCompletionRequest{
		Model: openAIProvider.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: openAIProvider.Temperature,
		TopP:        openAIProvider.TopP,
	}
	if openAIProvider.MaxTokens > 0 {
		req.MaxTokens = openAIProvider.MaxTokens
	}

	resp, err := openAIProvider.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from model '%s'", openAIProvider.Model)
	}

	if resp.Usage.PromptTokens > 0 && openAIProvider.TokenManagement != nil {
		openAIProvider.TokenManagement.UsedTokens(resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	}

	return &models.ChatResponse{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}
