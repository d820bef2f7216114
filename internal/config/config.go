// Package config loads user settings for the fcp CLI from a YAML file
// with environment variable fallbacks.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alnah/go-fcp/internal/fcp"
)

// Environment variable fallbacks, used when the config file omits the
// corresponding key.
const (
	EnvBaseURL   = "FCP_BASE_URL"
	EnvUserID    = "FCP_USER_ID"
	EnvAPIToken  = "FCP_API_TOKEN"
	EnvOpenAIKey = "OPENAI_API_KEY"
)

// Settings holds user configuration loaded from
// ~/.config/fcp/config.yaml.
type Settings struct {
	// BaseURL is the FCP server root, e.g. http://localhost:8080.
	BaseURL string `yaml:"base_url"`

	// UserID identifies the acting user on every request.
	UserID string `yaml:"user_id"`

	// APIToken is the optional bearer token for the FCP server.
	APIToken string `yaml:"api_token"`

	// OpenAIKey is the API key for the research agent. Usually left
	// empty here and supplied via OPENAI_API_KEY.
	OpenAIKey string `yaml:"openai_key"`

	// TimeoutSeconds bounds each request attempt.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// MaxRetries is the retry budget after the first attempt.
	MaxRetries int `yaml:"max_retries"`

	// RetryDelaySeconds is the base backoff delay.
	RetryDelaySeconds float64 `yaml:"retry_delay_seconds"`

	// MaxResponseMB caps response bodies. 0 disables the cap.
	MaxResponseMB int `yaml:"max_response_mb"`

	// RateLimit enables a client-side request rate cap (req/s) when > 0.
	RateLimit float64 `yaml:"rate_limit"`

	// AutoClose tears the connection down after every request.
	AutoClose bool `yaml:"auto_close"`
}

// DefaultSettings returns the documented defaults. Load starts from
// these so that absent YAML keys keep their default values.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:           "http://localhost:8080",
		TimeoutSeconds:    30,
		MaxRetries:        3,
		RetryDelaySeconds: 1.0,
		MaxResponseMB:     10,
	}
}

// Dir returns the configuration directory path. Uses XDG_CONFIG_HOME
// if set, otherwise ~/.config/fcp.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fcp"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "fcp"), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.yaml"), nil
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then environment variable fallbacks
// for the string keys (FCP_BASE_URL always wins so one-off overrides
// work without editing the file). A missing file is not an error.
func Load() (Settings, error) {
	p, err := Path()
	if err != nil {
		return Settings{}, err
	}
	return LoadFile(p, os.Getenv)
}

// LoadFile is Load with an explicit path and env lookup, for tests.
func LoadFile(path string, getenv func(string) string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path) // #nosec G304 -- config path is constructed from home dir
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults plus env fallbacks.
	default:
		return s, fmt.Errorf("failed to read config: %w", err)
	}

	if v := getenv(EnvBaseURL); v != "" {
		s.BaseURL = v
	}
	if s.UserID == "" {
		s.UserID = getenv(EnvUserID)
	}
	if s.APIToken == "" {
		s.APIToken = getenv(EnvAPIToken)
	}
	if s.OpenAIKey == "" {
		s.OpenAIKey = getenv(EnvOpenAIKey)
	}

	return s, nil
}

// ClientConfig translates the settings into the client configuration.
func (s Settings) ClientConfig(logger *slog.Logger) fcp.Config {
	return fcp.Config{
		BaseURL:           s.BaseURL,
		UserID:            s.UserID,
		AuthToken:         s.APIToken,
		Timeout:           time.Duration(s.TimeoutSeconds) * time.Second,
		MaxRetries:        s.MaxRetries,
		RetryDelay:        time.Duration(s.RetryDelaySeconds * float64(time.Second)),
		BackoffMultiplier: fcp.DefaultBackoffMultiplier,
		MaxResponseSize:   int64(s.MaxResponseMB) << 20,
		RateLimit:         s.RateLimit,
		AutoClose:         s.AutoClose,
		Logger:            logger,
	}
}
