package contracts

import (
	"context"

	"github.com/bentito/lintfixLLM/providers/models"
)

// IChatProvider abstracts a chat completions endpoint. Calls are synchronous;
// the caller bounds them with the request context.
type IChatProvider interface {
	ChatCompletion(ctx context.Context, systemPrompt string, userPrompt string) (*models.ChatResponse, error)
}
