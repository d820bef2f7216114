// Package cli implements the fcp subcommands. Commands are thin
// consumers of the FCP client: parse flags, call an endpoint wrapper,
// render the result. Failure mapping to exit codes happens in
// cmd/fcp/main.go against the client's error taxonomy.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-fcp/internal/config"
	"github.com/alnah/go-fcp/internal/fcp"
	"github.com/alnah/go-fcp/internal/research"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing commands in
// isolation. Use DefaultEnv() for production wiring.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Logger receives client retry warnings when --verbose is set.
	Logger *slog.Logger

	// SettingsLoader loads user configuration.
	SettingsLoader SettingsLoader

	// NewClient builds the FCP client from settings.
	NewClient func(cfg fcp.Config) FCPClient

	// NewCompleter builds the chat backend for the research command.
	NewCompleter func(apiKey string) research.Completer
}

// SettingsLoader loads and provides access to configuration.
type SettingsLoader interface {
	Load() (config.Settings, error)
}

// FCPClient is the client surface the commands consume. *fcp.Client
// implements it implicitly; tests substitute fakes.
type FCPClient interface {
	research.FoodAPI

	Health(ctx context.Context) (json.RawMessage, error)
	ListPantry(ctx context.Context) ([]fcp.PantryItem, error)
	AddPantryItem(ctx context.Context, item fcp.PantryItem) (fcp.PantryItem, error)
	RemovePantryItem(ctx context.Context, id string) error
	GetRecipe(ctx context.Context, id string) (fcp.Recipe, error)
	AnalyzeLabel(ctx context.Context, text string) (fcp.LabelAnalysis, error)
	LogMeal(ctx context.Context, entry fcp.MealEntry) (fcp.MealEntry, error)
	ListMeals(ctx context.Context, date string) ([]fcp.MealEntry, error)
	DailySummary(ctx context.Context, date string) (fcp.DailySummary, error)
	Close()
}

// settingsLoaderFunc adapts a function to SettingsLoader.
type settingsLoaderFunc func() (config.Settings, error)

func (f settingsLoaderFunc) Load() (config.Settings, error) { return f() }

// DefaultEnv creates an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Getenv:         os.Getenv,
		Now:            time.Now,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		SettingsLoader: settingsLoaderFunc(config.Load),
		NewClient: func(cfg fcp.Config) FCPClient {
			return fcp.New(cfg)
		},
		NewCompleter: func(apiKey string) research.Completer {
			return openai.NewClient(apiKey)
		},
	}
}

// buildClient loads settings, validates them, and constructs the
// client shared by every command.
func buildClient(env *Env) (FCPClient, config.Settings, error) {
	settings, err := env.SettingsLoader.Load()
	if err != nil {
		return nil, settings, err
	}
	if settings.BaseURL == "" {
		return nil, settings, ErrBaseURLMissing
	}
	return env.NewClient(settings.ClientConfig(env.Logger)), settings, nil
}
