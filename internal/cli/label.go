package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-fcp/internal/render"
)

// LabelCmd creates the label command group.
func LabelCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Analyze nutrition label text",
	}
	cmd.AddCommand(labelAnalyzeCmd(env))
	return cmd
}

func labelAnalyzeCmd(env *Env) *cobra.Command {
	var (
		file   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [text]...",
		Short: "Send label text to the server for analysis",
		Long: `Send nutrition label text to the server for analysis.

The text comes from the arguments, or from a file when --file is set.
Use "--file -" to read from stdin.`,
		Example: `  fcp label analyze "Energy 250kcal, Protein 12g, Carbohydrate 30g, Fat 8g"
  fcp label analyze --file label.txt
  pbpaste | fcp label analyze --file -`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := labelText(args, file)
			if err != nil {
				return err
			}

			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			analysis, err := client.AnalyzeLabel(cmd.Context(), text)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(env.Stdout, analysis)
			}
			_, err = fmt.Fprintln(env.Stdout, render.Label(analysis))
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `Read label text from a file ("-" for stdin)`)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a panel")
	return cmd
}

// labelText resolves the label text from args or the --file flag.
func labelText(args []string, file string) (string, error) {
	if file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading label file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("no label text given (pass text as arguments or use --file)")
	}
	return strings.Join(args, " "), nil
}
