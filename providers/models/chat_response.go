package models

// ChatResponse is the outcome of a single synchronous chat completion call.
type ChatResponse struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}
