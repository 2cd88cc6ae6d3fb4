package utils

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// DetectLanguage names the language of a file for syntax highlighting,
// falling back to plain text when detection is inconclusive.
func DetectLanguage(path string, content string) string {
	language := enry.GetLanguage(filepath.Base(path), []byte(content))
	if language == "" {
		return "text"
	}
	return strings.ToLower(language)
}

// IsGoSource reports whether the file content is Go code.
func IsGoSource(path string, content string) bool {
	return enry.GetLanguage(filepath.Base(path), []byte(content)) == "Go"
}
