package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-fcp/internal/research"
)

// ResearchCmd creates the research command: free-form nutrition
// questions answered by an AI agent that consults the FCP server.
func ResearchCmd(env *Env) *cobra.Command {
	var (
		model    string
		maxTurns int
	)

	cmd := &cobra.Command{
		Use:   "research <question>...",
		Short: "Ask a nutrition question, answered with live FCP data",
		Long: `Ask a free-form nutrition question. The agent consults the FCP food
database and recipe catalog while composing its answer.

Requires OPENAI_API_KEY (or openai_key in the config file).`,
		Example: `  fcp research "high protein breakfast under 400 kcal"
  fcp research --model gpt-4o which of my recipes is lowest in carbs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, settings, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			if settings.OpenAIKey == "" {
				return ErrAPIKeyMissing
			}

			agent := research.New(env.NewCompleter(settings.OpenAIKey), client,
				research.WithModel(model),
				research.WithMaxTurns(maxTurns),
			)
			answer, err := agent.Research(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(env.Stdout, answer)
			return err
		},
	}

	cmd.Flags().StringVar(&model, "model", research.DefaultModel, "Chat model to use")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 0, "Tool-loop turn budget (0 uses the default)")
	return cmd
}
