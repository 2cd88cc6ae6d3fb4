package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bentito/lintfixLLM/block_editor"
	block_contracts "github.com/bentito/lintfixLLM/block_editor/contracts"
	"github.com/bentito/lintfixLLM/config"
	"github.com/bentito/lintfixLLM/constants/lipgloss"
	"github.com/bentito/lintfixLLM/lint_runner"
	lint_contracts "github.com/bentito/lintfixLLM/lint_runner/contracts"
	"github.com/bentito/lintfixLLM/logging"
	"github.com/bentito/lintfixLLM/providers"
	providers_contracts "github.com/bentito/lintfixLLM/providers/contracts"
	"github.com/bentito/lintfixLLM/repairer"
	"github.com/bentito/lintfixLLM/rewriter"
	rewriter_contracts "github.com/bentito/lintfixLLM/rewriter/contracts"
	"github.com/bentito/lintfixLLM/token_management"
	contracts2 "github.com/bentito/lintfixLLM/token_management/contracts"
	"github.com/bentito/lintfixLLM/utils"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// RootDependencies holds the wired collaborators every subcommand builds on.
type RootDependencies struct {
	Cwd             string
	Config          *config.Config
	Logger          *log.Logger
	LintRunner      lint_contracts.ILintRunner
	BlockEditor     block_contracts.IBlockEditor
	ChatProvider    providers_contracts.IChatProvider
	Rewriter        rewriter_contracts.IBlockRewriter
	RewriteCache    *rewriter.RewriteCache
	TokenManagement contracts2.ITokenManagement
	Engine          *repairer.RepairEngine
}

// rootCmd: lintfix
var rootCmd = &cobra.Command{
	Use:   "lintfix",
	Short: "Repair nested-conditional lint findings with an LLM",
	Long: `lintfix runs golangci-lint over a repository, collects 'nestif' findings, and
asks a chat model to restructure each offending block into early-exit form.
Rewritten blocks are patched back in place, each file is written once, and the
linter runs again to verify the findings are gone.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Println("lintfix version " + version)
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	config.InitFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

// handleRootCommand loads configuration and wires the collaborators shared
// by the subcommands. It returns nil after printing the error when wiring
// fails.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	rootDependencies := &RootDependencies{}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}
	rootDependencies.Cwd = cwd

	rootDependencies.Config = config.LoadConfigs(cmd.Root(), cwd)
	if !filepath.IsAbs(rootDependencies.Config.RepoRoot) {
		rootDependencies.Config.RepoRoot = filepath.Join(cwd, rootDependencies.Config.RepoRoot)
	}

	logger := logging.New(rootDependencies.Config.LogLevel)
	logging.SetDefault(logger)
	rootDependencies.Logger = logger

	rootDependencies.TokenManagement = token_management.NewTokenManager()

	chatProvider, err := providers.ChatProviderFactory(rootDependencies.Config.AIProviderConfig, rootDependencies.TokenManagement)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return nil
	}
	rootDependencies.ChatProvider = chatProvider

	rootDependencies.LintRunner = lint_runner.NewLintRunner(
		rootDependencies.Config.LinterCommand,
		rootDependencies.Config.LintRule,
		rootDependencies.Config.RepoRoot,
		logger,
	)
	rootDependencies.BlockEditor = block_editor.NewBlockEditor()

	if rootDependencies.Config.EnableCache {
		rootDependencies.RewriteCache = rewriter.NewRewriteCache()
	}
	timeout := time.Duration(rootDependencies.Config.AIProviderConfig.RequestTimeoutSeconds) * time.Second
	rootDependencies.Rewriter = rewriter.NewBlockRewriter(chatProvider, rootDependencies.RewriteCache, timeout, logger)

	testRunner := utils.NewTestRunner(rootDependencies.Config.TestCommand, rootDependencies.Config.RepoRoot)
	rootDependencies.Engine = repairer.NewRepairEngine(
		rootDependencies.Config,
		rootDependencies.LintRunner,
		rootDependencies.BlockEditor,
		rootDependencies.Rewriter,
		testRunner,
		logger,
	)

	return rootDependencies
}
