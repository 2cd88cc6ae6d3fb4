package repairer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	block_contracts "github.com/bentito/lintfixLLM/block_editor/contracts"
	"github.com/bentito/lintfixLLM/config"
	"github.com/bentito/lintfixLLM/constants/lipgloss"
	lint_contracts "github.com/bentito/lintfixLLM/lint_runner/contracts"
	lint_models "github.com/bentito/lintfixLLM/lint_runner/models"
	"github.com/bentito/lintfixLLM/repairer/models"
	rewriter_contracts "github.com/bentito/lintfixLLM/rewriter/contracts"
	rewriter_models "github.com/bentito/lintfixLLM/rewriter/models"
	"github.com/bentito/lintfixLLM/utils"
	"github.com/charmbracelet/log"
)

// RepairEngine drives the scan, rewrite, patch, verify loop over one
// repository. Files are repaired strictly one at a time.
type RepairEngine struct {
	config     *config.Config
	lintRunner lint_contracts.ILintRunner
	editor     block_contracts.IBlockEditor
	rewriter   rewriter_contracts.IBlockRewriter
	testRunner *utils.TestRunner
	logger     *log.Logger
}

// RunOptions scope a single repair run.
type RunOptions struct {
	// TargetFile restricts repair to diagnostics reported for this path.
	TargetFile string
	// Debug renders a highlighted preview and diff for every rewrite.
	Debug bool
	// SkipTests disables the companion test run for this invocation.
	SkipTests bool
}

// NewRepairEngine wires an engine from its collaborators.
func NewRepairEngine(cfg *config.Config, lintRunner lint_contracts.ILintRunner, editor block_contracts.IBlockEditor, blockRewriter rewriter_contracts.IBlockRewriter, testRunner *utils.TestRunner, logger *log.Logger) *RepairEngine {
	return &RepairEngine{
		config:     cfg,
		lintRunner: lintRunner,
		editor:     editor,
		rewriter:   blockRewriter,
		testRunner: testRunner,
		logger:     logger,
	}
}

// Run performs one full repair pass: scan, then per file patch blocks in
// descending line order, persist once, re-lint to verify, and optionally run
// the companion test. Cancelling the context stops the run between model
// calls and returns the partial report with the context error.
func (engine *RepairEngine) Run(ctx context.Context, options RunOptions) (*models.RunReport, error) {
	started := time.Now()
	report := &models.RunReport{}

	diagnostics, err := engine.lintRunner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial lint scan failed: %w", err)
	}
	report.Diagnostics = len(diagnostics)

	if len(diagnostics) == 0 {
		engine.logger.Info("no diagnostics found", "rule", engine.config.LintRule)
		report.Duration = time.Since(started)
		return report, nil
	}

	grouped := groupByFile(diagnostics)
	paths := make([]string, 0, len(grouped))
	for path := range grouped {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if ctx.Err() != nil {
			report.Duration = time.Since(started)
			return report, ctx.Err()
		}

		outcome := engine.repairFile(ctx, path, grouped[path], options)
		report.Files = append(report.Files, outcome)

		if outcome.Fixed {
			report.FixedFiles++
		} else if !outcome.SkippedByFilter && !outcome.SkippedMissing {
			report.RemainingFiles++
		}
	}

	report.Duration = time.Since(started)
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// repairFile patches every diagnostic of one file against an in-memory
// working copy, then persists that copy exactly once.
func (engine *RepairEngine) repairFile(ctx context.Context, path string, diagnostics []lint_models.Diagnostic, options RunOptions) models.FileOutcome {
	outcome := models.FileOutcome{Path: path, Diagnostics: len(diagnostics)}

	if options.TargetFile != "" && path != options.TargetFile {
		outcome.SkippedByFilter = true
		return outcome
	}
	if utils.ShouldSkipPath(path, engine.config.SkipPaths) {
		engine.logger.Debug("skipping excluded path", "file", path)
		outcome.SkippedByFilter = true
		return outcome
	}

	absPath := engine.resolvePath(path)
	perm := fs.FileMode(0644)
	if info, err := os.Stat(absPath); err == nil {
		perm = info.Mode().Perm()
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		engine.logger.Warn("cannot read file, skipping", "file", path, "err", err)
		outcome.SkippedMissing = true
		return outcome
	}
	workingCopy := string(raw)

	// Later lines first, so earlier diagnostic line numbers stay valid while
	// the working copy changes underneath them.
	sort.SliceStable(diagnostics, func(i, j int) bool {
		return diagnostics[i].Line > diagnostics[j].Line
	})

	for _, diagnostic := range diagnostics {
		if ctx.Err() != nil {
			engine.logger.Warn("run cancelled, discarding unpersisted patches", "file", path)
			return outcome
		}

		block := engine.editor.ExtractBlock(workingCopy, diagnostic.Line)
		if block == "" {
			engine.logger.Debug("no balanced block at diagnostic line", "file", path, "line", diagnostic.Line)
			outcome.ExtractionSkips++
			continue
		}

		result := engine.rewriter.Rewrite(ctx, block)
		if result.FromCache {
			outcome.CacheHits++
		}
		if result.Fallback {
			engine.logger.Warn("rewrite fell back to original block", "file", path, "line", diagnostic.Line, "err", result.Err)
			outcome.RewriteFallbacks++
			continue
		}

		if options.Debug {
			engine.renderDebugPreview(path, block, result)
		}

		patched, ok := engine.editor.ReplaceFirstBlock(workingCopy, block, result.Code)
		if !ok {
			engine.logger.Warn("original block no longer present, patch skipped", "file", path, "line", diagnostic.Line)
			outcome.PatchMisses++
			continue
		}
		workingCopy = patched
		outcome.Patched++
	}

	if err := os.WriteFile(absPath, []byte(workingCopy), perm); err != nil {
		engine.logger.Error("failed to persist file", "file", path, "err", err)
		return outcome
	}
	outcome.Persisted = true
	engine.logger.Debug("file persisted", "file", path, "patched", outcome.Patched)

	clean, err := engine.lintRunner.VerifyFile(ctx, path)
	if err != nil {
		engine.logger.Warn("verification scan failed", "file", path, "err", err)
	} else {
		outcome.Fixed = clean
	}

	if outcome.Fixed && engine.config.RunTests && !options.SkipTests {
		testResult := engine.testRunner.RunForFile(ctx, path)
		outcome.TestFile = testResult.TestFile
		outcome.TestRan = testResult.Ran
		outcome.TestPassed = testResult.Passed
		if testResult.Ran {
			engine.logger.Info("regression test finished", "file", testResult.TestFile, "passed", testResult.Passed)
		}
	}

	return outcome
}

// renderDebugPreview shows the original block highlighted plus a diff
// against the rewrite. Odd content that does not look like Go is shown as a
// diff only.
func (engine *RepairEngine) renderDebugPreview(path string, block string, result rewriter_models.RewriteResult) {
	fmt.Println(lipgloss.Info.Render(fmt.Sprintf("--- %s", path)))

	if utils.IsGoSource(path, block) {
		if err := utils.HighlightCode(block, utils.DetectLanguage(path, block), engine.config.Theme); err != nil {
			engine.logger.Debug("preview highlight failed", "err", err)
		}
	}

	utils.RenderBlockDiff(block, result.Code)

	if result.Explanation != "" {
		fmt.Println(lipgloss.Gray.Render(result.Explanation))
	}
}

func (engine *RepairEngine) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(engine.config.RepoRoot, path)
}

// groupByFile buckets diagnostics by reported path, preserving their output
// order inside each bucket.
func groupByFile(diagnostics []lint_models.Diagnostic) map[string][]lint_models.Diagnostic {
	grouped := make(map[string][]lint_models.Diagnostic)
	for _, diagnostic := range diagnostics {
		grouped[diagnostic.File] = append(grouped[diagnostic.File], diagnostic)
	}
	return grouped
}
