package cli

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Tests for parseDate
// ---------------------------------------------------------------------------

func TestParseDate(t *testing.T) {
	t.Parallel()

	env, _ := newTestEnv(&mockClient{})

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{"empty defaults to today", "", "2026-08-31", nil},
		{"valid date passes through", "2026-01-15", "2026-01-15", nil},
		{"wrong separator", "2026/01/15", "", ErrInvalidDate},
		{"missing day", "2026-01", "", ErrInvalidDate},
		{"not a date", "yesterday", "", ErrInvalidDate},
		{"impossible date", "2026-02-30", "", ErrInvalidDate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseDate(env, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parseDate(%q) error = %v, want %v", tt.value, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDate(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("parseDate(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Tests for printJSON
// ---------------------------------------------------------------------------

func TestPrintJSON_Indents(t *testing.T) {
	t.Parallel()

	buf := &syncBuffer{}
	if err := printJSON(buf, map[string]int{"calories": 250}); err != nil {
		t.Fatalf("printJSON() unexpected error: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "  \"calories\": 250") {
		t.Errorf("printJSON() output not indented:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("printJSON() output missing trailing newline")
	}
}

func TestPrintJSON_UnencodableValue(t *testing.T) {
	t.Parallel()

	if err := printJSON(&syncBuffer{}, func() {}); err == nil {
		t.Error("printJSON() expected error for unencodable value")
	}
}
