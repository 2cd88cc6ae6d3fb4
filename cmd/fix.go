package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bentito/lintfixLLM/constants/lipgloss"
	"github.com/bentito/lintfixLLM/repairer"
	repairer_models "github.com/bentito/lintfixLLM/repairer/models"
	"github.com/bentito/lintfixLLM/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// fixCmd: lintfix fix
var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Repair nested-conditional findings in place",
	Long: `The 'fix' subcommand runs the configured linter, extracts the offending block
for every finding, asks the chat model for an early-exit rewrite, and patches
the result back into the file. Each file is written at most once and re-linted
afterwards to verify the findings are gone. When a companion _test.go file
exists, it is run as a regression signal.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		targetFile, _ := cmd.Flags().GetString("file")
		debug, _ := cmd.Flags().GetBool("debug")
		skipTests, _ := cmd.Flags().GetBool("no-test")

		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}
		handleFixCommand(rootDependencies, force, targetFile, debug, skipTests)
	},
}

func init() {
	fixCmd.Flags().BoolP("force", "f", false, "Rewrite files without asking for confirmation")
	fixCmd.Flags().String("file", "", "Repair only diagnostics reported for this file path")
	fixCmd.Flags().Bool("debug", false, "Show highlighted block previews and diffs for every rewrite")
	fixCmd.Flags().Bool("no-test", false, "Skip the companion test run after repairing a file")

	rootCmd.AddCommand(fixCmd)
}

func handleFixCommand(rootDependencies *RootDependencies, force bool, targetFile string, debug bool, skipTests bool) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if !force {
		reader := bufio.NewReader(os.Stdin)
		accepted, err := utils.ConfirmPrompt(fmt.Sprintf("This will rewrite Go files under '%s' in place. Continue?", rootDependencies.Config.RepoRoot), reader)
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			return
		}
		if !accepted {
			fmt.Println(lipgloss.Yellow.Render("Repair cancelled."))
			return
		}
	}

	// The spinner and per-block debug output fight over the terminal, so the
	// spinner only runs in the quiet mode.
	var spinnerRun *pterm.SpinnerPrinter
	if !debug {
		spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)
		spinnerRun, _ = spinner.Start(fmt.Sprintf("Repairing '%s' findings...", rootDependencies.Config.LintRule))
	}

	report, err := rootDependencies.Engine.Run(ctx, repairer.RunOptions{
		TargetFile: targetFile,
		Debug:      debug,
		SkipTests:  skipTests,
	})

	if spinnerRun != nil {
		spinnerRun.Stop()
		fmt.Print("\r")
	}

	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		if report == nil {
			return
		}
	}

	renderRunReport(report, rootDependencies)
}

func renderRunReport(report *repairer_models.RunReport, rootDependencies *RootDependencies) {
	if report.Diagnostics == 0 {
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ No '%s' findings. Nothing to repair.", rootDependencies.Config.LintRule)))
		return
	}

	for _, outcome := range report.Files {
		switch {
		case outcome.SkippedByFilter:
			fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("- %s skipped", outcome.Path)))
		case outcome.SkippedMissing:
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("! %s missing on disk, skipped", outcome.Path)))
		case outcome.Fixed:
			fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ %s fixed (%d finding(s), %d patched)", outcome.Path, outcome.Diagnostics, outcome.Patched)))
		default:
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("! %s still has findings (%d patched, %d fallback(s), %d patch miss(es))", outcome.Path, outcome.Patched, outcome.RewriteFallbacks, outcome.PatchMisses)))
		}

		if outcome.TestRan {
			if outcome.TestPassed {
				fmt.Println(lipgloss.Green.Render(fmt.Sprintf("  tests passed: %s", outcome.TestFile)))
			} else {
				fmt.Println(lipgloss.Red.Render(fmt.Sprintf("  tests failed: %s", outcome.TestFile)))
			}
		}
	}

	summary := fmt.Sprintf("Findings: %d - Files fixed: %d - Files remaining: %d - Took: %s",
		report.Diagnostics, report.FixedFiles, report.RemainingFiles, report.Duration.Round(time.Millisecond))
	fmt.Println(lipgloss.BoxStyle.Render(summary))

	if rootDependencies.RewriteCache != nil {
		stats := rootDependencies.RewriteCache.GetPerformanceStats()
		fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("Rewrite cache: %v hit(s) out of %v request(s)", stats["cache_hits"], stats["total_requests"])))
	}

	rootDependencies.TokenManagement.DisplayTokens(
		rootDependencies.Config.AIProviderConfig.Provider,
		rootDependencies.Config.AIProviderConfig.Model,
	)
}
