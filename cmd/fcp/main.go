package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alnah/go-fcp/internal/cli"
	"github.com/alnah/go-fcp/internal/fcp"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitAPI        = 5
	ExitInterrupt  = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create the CLI environment with production defaults.
	env := cli.DefaultEnv()

	var verbose bool

	// Root command.
	rootCmd := &cobra.Command{
		Use:     "fcp",
		Short:   "Track foods, pantry, recipes, and meals against an FCP server",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				env.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log retry and connection activity to stderr")

	// Subcommands.
	rootCmd.AddCommand(cli.HealthCmd(env))
	rootCmd.AddCommand(cli.FoodCmd(env))
	rootCmd.AddCommand(cli.PantryCmd(env))
	rootCmd.AddCommand(cli.RecipeCmd(env))
	rootCmd.AddCommand(cli.LabelCmd(env))
	rootCmd.AddCommand(cli.MealCmd(env))
	rootCmd.AddCommand(cli.ResearchCmd(env))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Interrupt (Ctrl-C) surfaces as context cancellation.
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	// Usage errors: Cobra flag/arg parsing failures.
	if isCobraUsageError(err) {
		return ExitUsage
	}

	// Setup errors: missing configuration.
	if errors.Is(err, cli.ErrBaseURLMissing) || errors.Is(err, cli.ErrAPIKeyMissing) {
		return ExitSetup
	}

	// Validation errors: malformed user input.
	if errors.Is(err, cli.ErrInvalidDate) || errors.Is(err, cli.ErrInvalidMeal) ||
		errors.Is(err, cli.ErrInvalidServings) {
		return ExitValidation
	}

	// API errors: anything from the client's error taxonomy.
	if fcp.IsClientError(err) {
		return ExitAPI
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate
// Cobra usage errors. Cobra doesn't expose typed errors, so string
// matching is the only reliable approach. Stable across Cobra v1.8+.
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
func isCobraUsageError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
