// Package main is the entry point for the PRSentry application.
// PRSentry is an AI-powered pull request review agent for CI pipelines.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prsentry/prsentry/consts"
	"github.com/prsentry/prsentry/internal/config"
	"github.com/prsentry/prsentry/internal/engine"
	"github.com/prsentry/prsentry/pkg/errors"
	"github.com/prsentry/prsentry/pkg/logger"

	// Import agent implementations to register them
	// All agents are registered through the agents package
	_ "github.com/prsentry/prsentry/internal/agent/agents"

	// Import git provider implementations to register them
	// All providers are registered through the providers package
	_ "github.com/prsentry/prsentry/internal/git/providers"
)

// Build information - set via ldflags during build
// These variables are linked to consts package for global access
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// init synchronizes build info to consts package for global access
func init() {
	consts.Version = Version
	consts.BuildTime = BuildTime
	consts.GitCommit = GitCommit
}

// configPath holds the path to the optional configuration file
var configPath string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "prsentry",
	Short: "PRSentry - AI-Powered Pull Request Review Agent",
	Long: `PRSentry reviews pull requests inside CI pipelines. It reads the PR
diff from a pipeline artifact, asks an AI agent for a structured review,
and publishes a summary comment, inline comments anchored to the diff,
and a testing note on the linked issue tracker.`,
}

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review the pull request described by the environment",
	Long: `Run one review pass over the current pull request.

The PR under review is described by environment variables set by the CI
pipeline (REPO_FULL_NAME, PR_NUMBER, PR_TITLE, PR_BODY) and the diff is
read from an artifact file written by an earlier pipeline step:

  prsentry review --diff-file pr_diff.txt

Use --dry-run to print the comments instead of publishing them.`,
	Run: runReview,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", consts.ProjectName, Version)
		fmt.Printf("  Build Time: %s\n", BuildTime)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
	},
}

func init() {
	// Disable auto-generated completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (optional, environment variables take precedence)")

	// Add commands
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(versionCmd)

	// Review command flags
	reviewCmd.Flags().String("diff-file", "", "diff artifact path (overrides config)")
	reviewCmd.Flags().Bool("dry-run", false, "print comments instead of publishing them")
	reviewCmd.Flags().Bool("debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runReview executes one review pass
func runReview(cmd *cobra.Command, args []string) {
	// Load .env if present so local runs match the CI environment
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(errors.ExitCodeConfigValidation)
	}

	// Override config with command line flags
	if diffFile, _ := cmd.Flags().GetString("diff-file"); diffFile != "" {
		cfg.Review.DiffFile = diffFile
	}
	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		cfg.Review.DryRun = true
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "text"
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting PRSentry",
		zap.String("version", Version),
		zap.String("provider", cfg.Provider.Type),
		zap.String("agent", cfg.Agent.Name),
		zap.Bool("dry_run", cfg.Review.DryRun),
	)
	logger.Debug("Effective configuration", zap.Any("config", cfg.Masked()))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "\n[ERROR] Configuration validation failed\n")
		if appErr, ok := errors.AsAppError(err); ok {
			fmt.Fprintf(os.Stderr, "Error Code: %s\n", appErr.Code)
			if missing, ok := appErr.Details.([]string); ok {
				for _, detail := range missing {
					fmt.Fprintf(os.Stderr, "  - %s\n", detail)
				}
			}
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		os.Exit(errors.ExitCodeConfigValidation)
	}

	eng, err := engine.New(cfg)
	if err != nil {
		logger.Error("Failed to create review engine", zap.Error(err))
		os.Exit(errors.ExitCodeReviewFailed)
	}

	if err := eng.Run(context.Background()); err != nil {
		logger.Error("Review failed", zap.Error(err))
		os.Exit(errors.ExitCodeReviewFailed)
	}

	logger.Info("PRSentry finished")
}
