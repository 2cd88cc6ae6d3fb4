package models

// AIError is the JSON error body returned by chat completion endpoints.
type AIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
