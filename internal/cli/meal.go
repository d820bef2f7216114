package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-fcp/internal/fcp"
	"github.com/alnah/go-fcp/internal/render"
)

// MealCmd creates the meal command group.
func MealCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log meals and review your day",
	}
	cmd.AddCommand(mealLogCmd(env))
	cmd.AddCommand(mealListCmd(env))
	cmd.AddCommand(mealSummaryCmd(env))
	return cmd
}

func mealLogCmd(env *Env) *cobra.Command {
	var (
		meal     string
		date     string
		servings float64
		foodID   string
	)

	cmd := &cobra.Command{
		Use:   "log <name>...",
		Short: "Log a meal entry",
		Example: `  fcp meal log oatmeal --meal breakfast
  fcp meal log "chicken salad" --meal lunch --servings 1.5 --date 2026-08-30
  fcp meal log --food f123 --meal snack greek yogurt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meal = strings.ToLower(meal)
			if !validMeals[meal] {
				return fmt.Errorf("meal %q is not one of breakfast, lunch, dinner, snack: %w",
					meal, ErrInvalidMeal)
			}
			if servings <= 0 {
				return fmt.Errorf("servings %g: %w", servings, ErrInvalidServings)
			}
			day, err := parseDate(env, date)
			if err != nil {
				return err
			}

			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			stored, err := client.LogMeal(cmd.Context(), fcp.MealEntry{
				FoodID:   foodID,
				Name:     strings.Join(args, " "),
				Meal:     meal,
				Date:     day,
				Servings: servings,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(env.Stdout, "logged %s for %s on %s (%.0f kcal)\n",
				stored.Name, stored.Meal, stored.Date, stored.Totals.Calories)
			return err
		},
	}

	cmd.Flags().StringVarP(&meal, "meal", "m", "snack", "Meal slot: breakfast, lunch, dinner, snack")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64VarP(&servings, "servings", "s", 1, "Number of servings")
	cmd.Flags().StringVar(&foodID, "food", "", "Link the entry to a food database ID")
	return cmd
}

func mealListCmd(env *Env) *cobra.Command {
	var (
		date   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meals logged on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDate(env, date)
			if err != nil {
				return err
			}

			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			entries, err := client.ListMeals(cmd.Context(), day)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(env.Stdout, entries)
			}
			if len(entries) == 0 {
				_, err = fmt.Fprintf(env.Stdout, "no meals logged on %s\n", day)
				return err
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.Meal, e.Name,
					fmt.Sprintf("%g", e.Servings),
					fmt.Sprintf("%.0f", e.Totals.Calories),
				})
			}
			_, err = fmt.Fprint(env.Stdout, render.Table(
				[]string{"MEAL", "NAME", "SERVINGS", "KCAL"}, rows))
			return err
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")
	return cmd
}

func mealSummaryCmd(env *Env) *cobra.Command {
	var (
		date   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the day's nutrition totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDate(env, date)
			if err != nil {
				return err
			}

			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			summary, err := client.DailySummary(cmd.Context(), day)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(env.Stdout, summary)
			}
			_, err = fmt.Fprintln(env.Stdout, render.Summary(summary))
			return err
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a panel")
	return cmd
}
