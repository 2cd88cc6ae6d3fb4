package token_management

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/bentito/lintfixLLM/constants/lipgloss"
	"github.com/bentito/lintfixLLM/embed_data"
	"github.com/bentito/lintfixLLM/token_management/contracts"
)

// tokenManager accumulates prompt and completion token counts for a run.
type tokenManager struct {
	mutex           sync.Mutex
	usedToken       int
	usedInputToken  int
	usedOutputToken int
}

type details struct {
	MaxTokens                  int     `json:"max_tokens"`
	MaxInputTokens             int     `json:"max_input_tokens"`
	MaxOutputTokens            int     `json:"max_output_tokens"`
	InputCostPerMillionTokens  float64 `json:"input_cost_per_million_tokens,omitempty"`
	OutputCostPerMillionTokens float64 `json:"output_cost_per_million_tokens,omitempty"`
	Mode                       string  `json:"mode"`
	SupportsFunctionCalling    bool    `json:"supports_function_calling,omitempty"`
}

type modelTable struct {
	ModelDetails map[string]details `json:"models"`
}

var (
	modelDetailsOnce sync.Once
	modelDetails     map[string]details
)

// NewTokenManager creates a new token manager.
func NewTokenManager() contracts.ITokenManagement {
	return &tokenManager{}
}

// UsedTokens accumulates the token counts for the run.
func (tm *tokenManager) UsedTokens(inputToken int, outputToken int) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()
	tm.usedInputToken += inputToken
	tm.usedOutputToken += outputToken
	tm.usedToken += inputToken + outputToken
}

// DisplayTokens renders the run's token totals and estimated cost in a box.
func (tm *tokenManager) DisplayTokens(chatProviderName string, chatModel string) {
	total, input, output := tm.GetCurrentTokenUsage()
	cost := tm.CalculateCost(chatProviderName, chatModel, input, output)

	tokenInfo := fmt.Sprintf("Tokens Used: %d (prompt %d / completion %d) - Cost: %.6f $ - Model: %s", total, input, output, cost, chatModel)
	fmt.Println(lipgloss.BoxStyle.Render(tokenInfo))
}

func (tm *tokenManager) GetCurrentTokenUsage() (total int, input int, output int) {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()
	return tm.usedToken, tm.usedInputToken, tm.usedOutputToken
}

func (tm *tokenManager) ClearToken() {
	tm.mutex.Lock()
	defer tm.mutex.Unlock()
	tm.usedToken = 0
	tm.usedInputToken = 0
	tm.usedOutputToken = 0
}

// CalculateCost prices the given token counts against the embedded model
// table. Unknown models (local models in particular) cost zero.
func (tm *tokenManager) CalculateCost(providerName string, modelName string, inputToken int, outputToken int) float64 {
	model, err := getModelDetails(modelName)
	if err != nil {
		return 0
	}

	inputCost := float64(inputToken) * model.InputCostPerMillionTokens / 1000000.0
	outputCost := float64(outputToken) * model.OutputCostPerMillionTokens / 1000000.0

	return inputCost + outputCost
}

func getModelDetails(modelName string) (details, error) {
	modelDetailsOnce.Do(func() {
		var table modelTable
		if err := json.Unmarshal(embed_data.ModelDetails, &table); err == nil {
			modelDetails = table.ModelDetails
		}
	})

	model, exists := modelDetails[strings.ToLower(modelName)]
	if !exists {
		return details{}, fmt.Errorf("model details with name '%s' not found", modelName)
	}

	return model, nil
}
