package lint_runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/bentito/lintfixLLM/lint_runner/contracts"
	"github.com/bentito/lintfixLLM/lint_runner/models"
	"github.com/charmbracelet/log"
)

// LintRunner runs the configured linter command and extracts diagnostics for
// a single rule from its text output.
type LintRunner struct {
	command string
	rule    string
	workDir string
	pattern *regexp.Regexp
	logger  *log.Logger
}

// NewLintRunner initializes a runner for one rule. The diagnostic grammar is
// `<file>:<line>:<col> <rule> <message>`, matched per line.
func NewLintRunner(command string, rule string, workDir string, logger *log.Logger) contracts.ILintRunner {
	pattern := regexp.MustCompile(`^(?P<file>.+?):(?P<line>\d+):(?P<col>\d+)\s+` + regexp.QuoteMeta(rule) + `\s+(?P<message>.+)$`)
	return &LintRunner{
		command: command,
		rule:    rule,
		workDir: workDir,
		pattern: pattern,
		logger:  logger,
	}
}

// RunLinter executes the linter command in the repository root and returns
// its stdout. A non-zero exit status is normal linter behavior when findings
// exist, so only a failure to run the command at all is an error.
func (runner *LintRunner) RunLinter(ctx context.Context) (string, error) {
	parts := strings.Fields(runner.command)
	if len(parts) == 0 {
		return "", fmt.Errorf("linter command is empty")
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = runner.workDir

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			runner.logger.Debug("linter exited non-zero", "command", runner.command, "code", exitErr.ExitCode())
			return string(output), nil
		}
		return "", fmt.Errorf("failed to run linter '%s': %w", runner.command, err)
	}

	return string(output), nil
}

// ParseDiagnostics extracts the rule's diagnostics from linter output. Lines
// that do not match the grammar, or whose line/column fields are not positive
// integers, are ignored.
func (runner *LintRunner) ParseDiagnostics(output string) []models.Diagnostic {
	var diagnostics []models.Diagnostic

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		match := runner.pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		lineNum, err := strconv.Atoi(match[runner.pattern.SubexpIndex("line")])
		if err != nil || lineNum < 1 {
			continue
		}
		col, err := strconv.Atoi(match[runner.pattern.SubexpIndex("col")])
		if err != nil || col < 1 {
			continue
		}

		diagnostics = append(diagnostics, models.Diagnostic{
			File:    match[runner.pattern.SubexpIndex("file")],
			Line:    lineNum,
			Col:     col,
			Message: match[runner.pattern.SubexpIndex("message")],
		})
	}

	return diagnostics
}

// Scan runs the linter and parses its output in one step.
func (runner *LintRunner) Scan(ctx context.Context) ([]models.Diagnostic, error) {
	output, err := runner.RunLinter(ctx)
	if err != nil {
		return nil, err
	}

	diagnostics := runner.ParseDiagnostics(output)
	runner.logger.Debug("lint scan finished", "rule", runner.rule, "diagnostics", len(diagnostics))
	return diagnostics, nil
}

// VerifyFile re-runs the scan and reports whether the given file is now free
// of diagnostics for the rule. Paths compare as the linter reports them.
func (runner *LintRunner) VerifyFile(ctx context.Context, path string) (bool, error) {
	diagnostics, err := runner.Scan(ctx)
	if err != nil {
		return false, err
	}

	for _, diagnostic := range diagnostics {
		if diagnostic.File == path {
			return false, nil
		}
	}
	return true, nil
}
