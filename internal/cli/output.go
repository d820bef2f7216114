package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// printJSON writes v as indented JSON, for --json output.
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// parseDate validates a YYYY-MM-DD date string, defaulting to today
// when empty.
func parseDate(env *Env, value string) (string, error) {
	if value == "" {
		return env.Now().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", value, ErrInvalidDate)
	}
	return value, nil
}

// validMeals is the closed set of meal names the server accepts.
var validMeals = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}
