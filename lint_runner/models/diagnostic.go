package models

// Diagnostic is one parsed linter finding for the configured rule.
type Diagnostic struct {
	File    string
	Line    int
	Col     int
	Message string
}
