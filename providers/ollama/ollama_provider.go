package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bentito/lintfixLLM/providers/contracts"
	"github.com/bentito/lintfixLLM/providers/models"
	ollama_models "github.com/bentito/lintfixLLM/providers/ollama/models"
	contracts2 "github.com/bentito/lintfixLLM/token_management/contracts"
)

// OllamaConfig implements the chat provider interface for ollama.
type OllamaConfig struct {
	BaseURL         string
	Model           string
	Temperature     float32
	TopP            float32
	TokenManagement contracts2.ITokenManagement
}

const (
	defaultBaseURL = "http://localhost:11434/api"
)

// NewOllamaChatProvider initializes a new ollama chat provider.
func NewOllamaChatProvider(config *OllamaConfig) contracts.IChatProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OllamaConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		Temperature:     config.Temperature,
		TopP:            config.TopP,
		TokenManagement: config.TokenManagement,
	}
}

// ChatCompletion sends a non-streaming chat request and decodes the single
// JSON body the endpoint returns.
func (ollamaProvider *OllamaConfig) ChatCompletion(ctx context.Context, systemPrompt string, userPrompt string) (*models.ChatResponse, error) {
	reqBody := ollama_models.OllamaChatCompletionRequest{
		Model: ollamaProvider.Model,
		Messages: []ollama_models.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream:      false,
		Temperature: ollamaProvider.Temperature,
		TopP:        ollamaProvider.TopP,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshalling request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat", ollamaProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("request canceled: %v", ctx.Err())
		}
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiError models.AIError
		if err := json.Unmarshal(body, &apiError); err != nil || apiError.Error.Message == "" {
			return nil, fmt.Errorf("API request failed with status code '%d'", resp.StatusCode)
		}
		return nil, fmt.Errorf("API request failed with status code '%d' - %s", resp.StatusCode, apiError.Error.Message)
	}

	var response ollama_models.OllamaChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("error unmarshalling response: %v", err)
	}

	if response.PromptEvalCount > 0 && ollamaProvider.TokenManagement != nil {
		ollamaProvider.TokenManagement.UsedTokens(response.PromptEvalCount, response.EvalCount)
	}

	return &models.ChatResponse{
		Content:          response.Message.Content,
		PromptTokens:     response.PromptEvalCount,
		CompletionTokens: response.EvalCount,
	}, nil
}
