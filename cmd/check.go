package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/bentito/lintfixLLM/constants/lipgloss"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// checkCmd: lintfix check
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Scan for nested-conditional findings without modifying files",
	Long: `The 'check' subcommand runs the configured linter and lists the findings the
'fix' subcommand would repair, grouped by file. Nothing is modified. The exit
status is non-zero when findings exist, so it can gate CI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return fmt.Errorf("failed to initialize dependencies")
		}
		return handleCheckCommand(rootDependencies)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func handleCheckCommand(rootDependencies *RootDependencies) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)
	spinnerScan, _ := spinner.Start(fmt.Sprintf("Scanning for '%s' findings...", rootDependencies.Config.LintRule))

	diagnostics, err := rootDependencies.LintRunner.Scan(ctx)

	spinnerScan.Stop()
	fmt.Print("\r")

	if err != nil {
		return err
	}

	if len(diagnostics) == 0 {
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ No '%s' findings.", rootDependencies.Config.LintRule)))
		return nil
	}

	seenFiles := make(map[string]bool)
	currentFile := ""
	for _, diagnostic := range diagnostics {
		if diagnostic.File != currentFile {
			currentFile = diagnostic.File
			seenFiles[currentFile] = true
			fmt.Println(lipgloss.Info.Render(currentFile))
		}
		fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("  %d:%d %s", diagnostic.Line, diagnostic.Col, diagnostic.Message)))
	}

	fmt.Println(lipgloss.BoxStyle.Render(fmt.Sprintf("%d '%s' finding(s) in %d file(s)", len(diagnostics), rootDependencies.Config.LintRule, len(seenFiles))))

	return fmt.Errorf("found %d '%s' finding(s)", len(diagnostics), rootDependencies.Config.LintRule)
}
