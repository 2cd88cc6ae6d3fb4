package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bentito/lintfixLLM/constants/lipgloss"
	"github.com/bentito/lintfixLLM/providers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file.
type Config struct {
	Version          string                      `mapstructure:"version"`
	Theme            string                      `mapstructure:"theme"`
	LogLevel         string                      `mapstructure:"log_level"`
	RepoRoot         string                      `mapstructure:"repo_root"`
	LinterCommand    string                      `mapstructure:"linter_command"`
	LintRule         string                      `mapstructure:"lint_rule"`
	TestCommand      string                      `mapstructure:"test_command"`
	RunTests         bool                        `mapstructure:"run_tests"`
	EnableCache      bool                        `mapstructure:"enable_cache"`
	SkipPaths        []string                    `mapstructure:"skip_paths"`
	AIProviderConfig *providers.AIProviderConfig `mapstructure:"ai_provider_config"`
}

// DefaultConfig values. The provider defaults target a local
// OpenAI-compatible server rather than a hosted API.
var DefaultConfig = Config{
	Version:       "1.0",
	Theme:         "dracula",
	LogLevel:      "info",
	RepoRoot:      ".",
	LinterCommand: "golangci-lint run",
	LintRule:      "nestif",
	TestCommand:   "go test",
	RunTests:      true,
	EnableCache:   true,
	AIProviderConfig: &providers.AIProviderConfig{
		Provider:              "openai",
		BaseURL:               "http://127.0.0.1:8080/v1",
		Model:                 "granite-3.0-8b-instruct",
		ApiKey:                "",
		Temperature:           0.2,
		TopP:                  1.0,
		MaxTokens:             0,
		RequestTimeoutSeconds: 60,
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the repository directory
		viper.SetConfigName("lintfix-config")
		viper.AddConfigPath(cwd)

		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// No config file is fine, defaults apply
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("log_level", DefaultConfig.LogLevel)
	viper.SetDefault("repo_root", DefaultConfig.RepoRoot)
	viper.SetDefault("linter_command", DefaultConfig.LinterCommand)
	viper.SetDefault("lint_rule", DefaultConfig.LintRule)
	viper.SetDefault("test_command", DefaultConfig.TestCommand)
	viper.SetDefault("run_tests", DefaultConfig.RunTests)
	viper.SetDefault("enable_cache", DefaultConfig.EnableCache)
	viper.SetDefault("skip_paths", DefaultConfig.SkipPaths)
	viper.SetDefault("ai_provider_config.provider", DefaultConfig.AIProviderConfig.Provider)
	viper.SetDefault("ai_provider_config.base_url", DefaultConfig.AIProviderConfig.BaseURL)
	viper.SetDefault("ai_provider_config.model", DefaultConfig.AIProviderConfig.Model)
	viper.SetDefault("ai_provider_config.api_key", DefaultConfig.AIProviderConfig.ApiKey)
	viper.SetDefault("ai_provider_config.temperature", DefaultConfig.AIProviderConfig.Temperature)
	viper.SetDefault("ai_provider_config.top_p", DefaultConfig.AIProviderConfig.TopP)
	viper.SetDefault("ai_provider_config.max_tokens", DefaultConfig.AIProviderConfig.MaxTokens)
	viper.SetDefault("ai_provider_config.request_timeout_seconds", DefaultConfig.AIProviderConfig.RequestTimeoutSeconds)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "LINTFIX_THEME")
	_ = viper.BindEnv("log_level", "LINTFIX_LOG_LEVEL")
	_ = viper.BindEnv("repo_root", "LINTFIX_REPO_ROOT")
	_ = viper.BindEnv("linter_command", "LINTFIX_LINTER_COMMAND")
	_ = viper.BindEnv("lint_rule", "LINTFIX_LINT_RULE")
	_ = viper.BindEnv("test_command", "LINTFIX_TEST_COMMAND")
	_ = viper.BindEnv("run_tests", "LINTFIX_RUN_TESTS")
	_ = viper.BindEnv("enable_cache", "LINTFIX_ENABLE_CACHE")
	_ = viper.BindEnv("ai_provider_config.provider", "LINTFIX_PROVIDER")
	_ = viper.BindEnv("ai_provider_config.base_url", "LINTFIX_BASE_URL")
	_ = viper.BindEnv("ai_provider_config.model", "LINTFIX_MODEL")
	_ = viper.BindEnv("ai_provider_config.api_key", "LINTFIX_API_KEY")
	_ = viper.BindEnv("ai_provider_config.temperature", "LINTFIX_TEMPERATURE")
	_ = viper.BindEnv("ai_provider_config.top_p", "LINTFIX_TOP_P")
	_ = viper.BindEnv("ai_provider_config.request_timeout_seconds", "LINTFIX_REQUEST_TIMEOUT_SECONDS")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))
	_ = viper.BindPFlag("repo_root", rootCmd.PersistentFlags().Lookup("repo_root"))
	_ = viper.BindPFlag("linter_command", rootCmd.PersistentFlags().Lookup("linter_command"))
	_ = viper.BindPFlag("lint_rule", rootCmd.PersistentFlags().Lookup("lint_rule"))
	_ = viper.BindPFlag("test_command", rootCmd.PersistentFlags().Lookup("test_command"))
	_ = viper.BindPFlag("run_tests", rootCmd.PersistentFlags().Lookup("run_tests"))
	_ = viper.BindPFlag("enable_cache", rootCmd.PersistentFlags().Lookup("enable_cache"))
	_ = viper.BindPFlag("ai_provider_config.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("ai_provider_config.base_url", rootCmd.PersistentFlags().Lookup("base_url"))
	_ = viper.BindPFlag("ai_provider_config.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("ai_provider_config.api_key", rootCmd.PersistentFlags().Lookup("api_key"))
	_ = viper.BindPFlag("ai_provider_config.temperature", rootCmd.PersistentFlags().Lookup("temperature"))
	_ = viper.BindPFlag("ai_provider_config.top_p", rootCmd.PersistentFlags().Lookup("top_p"))
	_ = viper.BindPFlag("ai_provider_config.request_timeout_seconds", rootCmd.PersistentFlags().Lookup("request_timeout"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Theme used when highlighting code previews (e.g. 'dracula', 'light', 'dark').")
	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Log level for diagnostics output ('debug', 'info', 'warn', 'error').")
	rootCmd.PersistentFlags().String("repo_root", DefaultConfig.RepoRoot, "Directory the linter runs in; diagnostic file paths resolve against it.")
	rootCmd.PersistentFlags().String("linter_command", DefaultConfig.LinterCommand, "Full linter command line, split on whitespace before execution.")
	rootCmd.PersistentFlags().String("lint_rule", DefaultConfig.LintRule, "Lint rule name whose diagnostics are repaired.")
	rootCmd.PersistentFlags().String("test_command", DefaultConfig.TestCommand, "Test command prefix used for the per-file regression check.")
	rootCmd.PersistentFlags().Bool("run_tests", DefaultConfig.RunTests, "Run the companion test file after a repaired file verifies clean.")
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Enable the in-memory rewrite cache so identical blocks hit the model once.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	// AI provider configuration
	rootCmd.PersistentFlags().String("provider", DefaultConfig.AIProviderConfig.Provider, "The chat provider kind ('openai' for any OpenAI-compatible endpoint, or 'ollama').")
	rootCmd.PersistentFlags().String("base_url", DefaultConfig.AIProviderConfig.BaseURL, "The base URL of the chat endpoint (default targets a local server).")
	rootCmd.PersistentFlags().String("model", DefaultConfig.AIProviderConfig.Model, "The name of the model used for chat completions.")
	rootCmd.PersistentFlags().String("api_key", DefaultConfig.AIProviderConfig.ApiKey, "The API key used to authenticate with the chat provider, when it requires one.")
	rootCmd.PersistentFlags().Float32("temperature", DefaultConfig.AIProviderConfig.Temperature, "Sampling temperature for rewrites; keep low for deterministic output.")
	rootCmd.PersistentFlags().Float32("top_p", DefaultConfig.AIProviderConfig.TopP, "Nucleus sampling parameter for rewrites.")
	rootCmd.PersistentFlags().Int("request_timeout", DefaultConfig.AIProviderConfig.RequestTimeoutSeconds, "Per-request timeout in seconds for chat completions.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
