package cli

import "errors"

// Sentinel errors for the command layer. The exitCode() function in
// cmd/fcp/main.go maps these to exit codes; API failures are covered
// separately by the client's error taxonomy.

// --- Setup errors ---
// Missing configuration that prevents the tool from running.

var (
	// ErrBaseURLMissing indicates no FCP server is configured.
	ErrBaseURLMissing = errors.New("no FCP server configured (set base_url in config or FCP_BASE_URL)")

	// ErrAPIKeyMissing indicates OPENAI_API_KEY is not set for the
	// research command.
	ErrAPIKeyMissing = errors.New("OPENAI_API_KEY environment variable not set")
)

// --- Validation errors ---
// Input validation errors that indicate incorrect usage.

var (
	// ErrInvalidDate indicates a date string is not YYYY-MM-DD.
	// Wrap with the value: fmt.Errorf("invalid date %q: %w", value, ErrInvalidDate)
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidMeal indicates a meal name outside
	// breakfast/lunch/dinner/snack.
	ErrInvalidMeal = errors.New("invalid meal name")

	// ErrInvalidServings indicates a non-positive servings value.
	ErrInvalidServings = errors.New("servings must be positive")
)
