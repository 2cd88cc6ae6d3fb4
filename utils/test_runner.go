package utils

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// TestRunner executes the project's test command scoped to a repaired file
// and its companion test file.
type TestRunner struct {
	command string
	workDir string
}

// TestResult reports one regression check. Ran is false when no companion
// test file exists for the source file.
type TestResult struct {
	TestFile string
	Ran      bool
	Passed   bool
	Output   string
}

// NewTestRunner creates a test runner that executes inside workDir.
func NewTestRunner(command string, workDir string) *TestRunner {
	return &TestRunner{command: command, workDir: workDir}
}

// CompanionTestFile returns the `_test.go` path convention for a Go source
// file, or "" when the path is not a plain Go source file.
func CompanionTestFile(path string) string {
	if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
		return ""
	}
	return strings.TrimSuffix(path, ".go") + "_test.go"
}

// RunForFile runs the test command against the source file and its companion
// test file when the companion exists on disk. The command's exit status is
// the pass/fail signal; output is captured for reporting.
func (runner *TestRunner) RunForFile(ctx context.Context, sourcePath string) TestResult {
	testPath := CompanionTestFile(sourcePath)
	if testPath == "" {
		return TestResult{}
	}

	absTestPath := testPath
	if !filepath.IsAbs(testPath) {
		absTestPath = filepath.Join(runner.workDir, testPath)
	}
	if _, err := os.Stat(absTestPath); err != nil {
		return TestResult{TestFile: testPath}
	}

	parts := strings.Fields(runner.command)
	if len(parts) == 0 {
		return TestResult{TestFile: testPath}
	}

	args := append(parts[1:], sourcePath, testPath)
	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Dir = runner.workDir

	output, err := cmd.CombinedOutput()
	return TestResult{
		TestFile: testPath,
		Ran:      true,
		Passed:   err == nil,
		Output:   string(output),
	}
}
