package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-fcp/internal/fcp"
	"github.com/alnah/go-fcp/internal/render"
)

// PantryCmd creates the pantry command group.
func PantryCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pantry",
		Short: "Manage your pantry inventory",
	}
	cmd.AddCommand(pantryListCmd(env))
	cmd.AddCommand(pantryAddCmd(env))
	cmd.AddCommand(pantryRemoveCmd(env))
	return cmd
}

func pantryListCmd(env *Env) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stocked items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			items, err := client.ListPantry(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(env.Stdout, items)
			}
			_, err = fmt.Fprint(env.Stdout, render.Pantry(items))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")
	return cmd
}

func pantryAddCmd(env *Env) *cobra.Command {
	var (
		quantity  float64
		unit      string
		expiresOn string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Stock an item",
		Example: `  fcp pantry add "rolled oats" --quantity 500 --unit g
  fcp pantry add eggs --quantity 12 --expires 2026-09-15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if expiresOn != "" {
				validated, err := parseDate(env, expiresOn)
				if err != nil {
					return err
				}
				expiresOn = validated
			}

			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			stored, err := client.AddPantryItem(cmd.Context(), fcp.PantryItem{
				Name:      args[0],
				Quantity:  quantity,
				Unit:      unit,
				ExpiresOn: expiresOn,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(env.Stdout, "added %s (%s)\n", stored.Name, stored.ID)
			return err
		},
	}

	cmd.Flags().Float64VarP(&quantity, "quantity", "q", 1, "Amount to stock")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Unit of measure (g, ml, pcs, ...)")
	cmd.Flags().StringVar(&expiresOn, "expires", "", "Expiry date (YYYY-MM-DD)")
	return cmd
}

func pantryRemoveCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an item by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.RemovePantryItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(env.Stdout, "removed %s\n", args[0])
			return err
		},
	}
}
