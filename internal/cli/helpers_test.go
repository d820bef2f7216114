package cli

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/alnah/go-fcp/internal/config"
	"github.com/alnah/go-fcp/internal/fcp"
	"github.com/alnah/go-fcp/internal/research"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// Test environment wiring
// ---------------------------------------------------------------------------

// testDate is the fixed "today" for date-defaulting tests.
var testDate = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

// newTestEnv builds an Env wired to the given mock client, with a
// default settings loader and a fixed clock. Commands write to the
// returned buffer.
func newTestEnv(client *mockClient) (*Env, *syncBuffer) {
	stdout := &syncBuffer{}
	env := &Env{
		Stdout:         stdout,
		Stderr:         &syncBuffer{},
		Getenv:         func(string) string { return "" },
		Now:            func() time.Time { return testDate },
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		SettingsLoader: &mockSettingsLoader{},
		NewClient:      func(cfg fcp.Config) FCPClient { return client },
		NewCompleter:   func(apiKey string) research.Completer { return &mockCompleter{} },
	}
	return env, stdout
}

// runCommand executes cmd with args, silencing cobra's own output.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// loaderWithSettings returns a loader yielding the given settings.
func loaderWithSettings(s config.Settings) *mockSettingsLoader {
	return &mockSettingsLoader{
		LoadFunc: func() (config.Settings, error) { return s, nil },
	}
}
