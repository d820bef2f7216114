package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-fcp/internal/render"
)

// RecipeCmd creates the recipe command group.
func RecipeCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Browse stored recipes",
	}
	cmd.AddCommand(recipeListCmd(env))
	cmd.AddCommand(recipeGetCmd(env))
	return cmd
}

func recipeListCmd(env *Env) *cobra.Command {
	var (
		tag    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes, optionally filtered by tag",
		Example: `  fcp recipe list
  fcp recipe list --tag vegetarian`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			recipes, err := client.ListRecipes(cmd.Context(), tag)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(env.Stdout, recipes)
			}
			_, err = fmt.Fprint(env.Stdout, render.Recipes(recipes))
			return err
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Filter by tag")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a table")
	return cmd
}

func recipeGetCmd(env *Env) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one recipe with ingredients and steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(env)
			if err != nil {
				return err
			}
			defer client.Close()

			recipe, err := client.GetRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(env.Stdout, recipe)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "serves %d", recipe.Servings)
			if len(recipe.Tags) > 0 {
				fmt.Fprintf(&b, "  [%s]", strings.Join(recipe.Tags, ", "))
			}
			fmt.Fprintf(&b, "\nper serving: %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat",
				recipe.PerServing.Calories, recipe.PerServing.Protein,
				recipe.PerServing.Carbs, recipe.PerServing.Fat)
			if len(recipe.Ingredients) > 0 {
				b.WriteString("\n\ningredients:")
				for _, ing := range recipe.Ingredients {
					fmt.Fprintf(&b, "\n  %g %s %s", ing.Quantity, ing.Unit, ing.Name)
				}
			}
			for i, step := range recipe.Instructions {
				if i == 0 {
					b.WriteString("\n\nsteps:")
				}
				fmt.Fprintf(&b, "\n  %d. %s", i+1, step)
			}
			_, err = fmt.Fprintln(env.Stdout, render.Panel(recipe.Name, b.String()))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw JSON instead of a panel")
	return cmd
}
