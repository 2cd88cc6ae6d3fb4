package utils

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// HighlightCode renders a code snippet to stdout with terminal colors using
// the configured theme.
func HighlightCode(snippet string, language string, theme string) error {
	if !strings.HasSuffix(snippet, "\n") {
		snippet += "\n"
	}
	return quick.Highlight(os.Stdout, snippet, language, "terminal256", theme)
}
