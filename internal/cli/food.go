package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-fcp/internal/render"
)

// FoodCmd creates the food command group.
func FoodCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "food",
		Short: "Search and inspect the food database",
	}
	cmd.AddCommand(foodSearchCmd(env))
	cmd.AddCommand(foodGetCmd(env))
	return cmd
}

func foodSearchCmd(env *Env) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search foods by name",
		Example: `  fcp food search rolled oats
  fcp food search "greek yogurt" --limit 3 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			foods, err := client.SearchFoods(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(env.Stdout, foods)
			}
			_, err = fmt.Fprint(env.Stdout, render.Foods(foods))
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")
	return cmd
}

func foodGetCmd(env *Env) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one food by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			food, err := client.GetFood(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(env.Stdout, food)
			}
			body := fmt.Sprintf("calories  %.0f\nprotein   %.1f g\ncarbs     %.1f g\nfat       %.1f g",
				food.Calories, food.Protein, food.Carbs, food.Fat)
			if food.ServingSize != "" {
				body += "\nserving   " + food.ServingSize
			}
			title := food.Name
			if food.Brand != "" {
				title += " (" + food.Brand + ")"
			}
			_, err = fmt.Fprintln(env.Stdout, render.Panel(title, body))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a panel")
	return cmd
}
