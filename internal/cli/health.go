package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// HealthCmd creates the health command.
func HealthCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the FCP server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			raw, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}

			var body any
			if err := json.Unmarshal(raw, &body); err != nil {
				return fmt.Errorf("health response is not JSON: %w", err)
			}
			return printJSON(env.Stdout, body)
		},
	}
}
