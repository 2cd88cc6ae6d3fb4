package contracts

import (
	"context"

	"github.com/bentito/lintfixLLM/lint_runner/models"
)

// ILintRunner executes the configured linter and parses its diagnostics.
type ILintRunner interface {
	RunLinter(ctx context.Context) (string, error)
	ParseDiagnostics(output string) []models.Diagnostic
	Scan(ctx context.Context) ([]models.Diagnostic, error)
	VerifyFile(ctx context.Context, path string) (bool, error)
}
