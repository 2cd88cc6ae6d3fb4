package providers

import (
	"fmt"
	"strings"

	"github.com/bentito/lintfixLLM/providers/contracts"
	"github.com/bentito/lintfixLLM/providers/ollama"
	"github.com/bentito/lintfixLLM/providers/openai"
	contracts2 "github.com/bentito/lintfixLLM/token_management/contracts"
)

// AIProviderConfig holds the chat endpoint settings shared by all providers.
type AIProviderConfig struct {
	Provider              string  `mapstructure:"provider"`
	BaseURL               string  `mapstructure:"base_url"`
	Model                 string  `mapstructure:"model"`
	ApiKey                string  `mapstructure:"api_key"`
	Temperature           float32 `mapstructure:"temperature"`
	TopP                  float32 `mapstructure:"top_p"`
	MaxTokens             int     `mapstructure:"max_tokens"`
	RequestTimeoutSeconds int     `mapstructure:"request_timeout_seconds"`
}

// ChatProviderFactory creates the chat provider named by the configuration.
func ChatProviderFactory(config *AIProviderConfig, tokenManagement contracts2.ITokenManagement) (contracts.IChatProvider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return openai.NewOpenAIChatProvider(&openai.OpenAIConfig{
			BaseURL:         config.BaseURL,
			Model:           config.Model,
			ApiKey:          config.ApiKey,
			Temperature:     config.Temperature,
			TopP:            config.TopP,
			MaxTokens:       config.MaxTokens,
			TokenManagement: tokenManagement,
		}), nil
	case "ollama":
		return ollama.NewOllamaChatProvider(&ollama.OllamaConfig{
			BaseURL:         config.BaseURL,
			Model:           config.Model,
			Temperature:     config.Temperature,
			TopP:            config.TopP,
			TokenManagement: tokenManagement,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
