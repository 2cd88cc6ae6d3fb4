package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bentito/lintfixLLM/constants/lipgloss"
)

// ConfirmPrompt asks the user a yes/no question and reads one answer line.
// EOF counts as a refusal so piped runs without --force stay safe.
func ConfirmPrompt(message string, reader *bufio.Reader) (bool, error) {
	fmt.Print(lipgloss.BlueSky.Render(fmt.Sprintf("%s (y/n): ", message)))

	userInput, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("error reading input: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(userInput))
	return answer == "y" || answer == "yes", nil
}
