package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fresco"
	"fresco/shopping"
)

var cursor string

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List and search the recipe catalogue",
}

var recipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a page of recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		restoreCart(cmd.Context())
		app.store.FetchRecipes(cmd.Context(), cursor)
		if err := printRecipes(cmd.OutOrStdout(), app.store.Recipes()); err != nil {
			return err
		}
		if next := app.store.LastEvaluatedID(); next != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\nMore recipes: fresco recipes list --cursor %s\n", next)
		}
		return nil
	},
}

var recipesSearchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Search recipes by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		restoreCart(cmd.Context())
		app.store.SearchRecipes(cmd.Context(), args[0])
		return printRecipes(cmd.OutOrStdout(), app.store.Recipes())
	},
}

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Inspect a single recipe",
}

var recipeShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a recipe with its ingredients and steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		restoreCart(ctx)
		app.store.FetchRecipe(ctx, args[0])
		recipe := app.store.CurrentRecipe()
		if recipe == nil {
			return fmt.Errorf("recipe %s could not be loaded", args[0])
		}
		app.store.FetchIngredients(ctx, recipe.IngredientIDs())

		servings := app.store.Servings(recipe.ID)
		lines := shopping.Aggregate([]fresco.SelectedRecipe{{Recipe: *recipe, Servings: servings}}, ingredientIndex(recipe))

		w := cmd.OutOrStdout()
		fav := ""
		if recipe.IsFavourite {
			fav = " ♥"
		}
		fmt.Fprintf(w, "%s%s\n", recipe.Name, fav)
		fmt.Fprintf(w, "Time: %s  Energy: %.0f kcal  (P %.0fg, C %.0fg, F %.0fg)\n",
			fresco.FormatTotalTime(recipe.TotalTime), recipe.Macros.Kcal(),
			recipe.Macros.Proteins, recipe.Macros.Carbs, recipe.Macros.Fats)
		if recipe.WebsiteURL != "" {
			fmt.Fprintf(w, "Source: %s\n", recipe.WebsiteURL)
		}
		fmt.Fprintf(w, "\nIngredients for %d serving(s):\n", servings)
		for _, l := range lines {
			fmt.Fprintf(w, "  %s %s %s\n", shopping.FormatAmount(l.Amount), l.Unit, l.Name)
		}
		if len(recipe.Steps) > 0 {
			fmt.Fprintln(w, "\nSteps:")
			for _, step := range recipe.Steps {
				fmt.Fprintf(w, "  %d. %s\n", step.Index, step.InstructionsHTML)
			}
		}
		return nil
	},
}

func init() {
	recipesListCmd.Flags().StringVar(&cursor, "cursor", "", "Last evaluated id of the previous page")
	recipesCmd.AddCommand(recipesListCmd, recipesSearchCmd)
	recipeCmd.AddCommand(recipeShowCmd)
}

func ingredientIndex(recipe *fresco.Recipe) map[string]fresco.Ingredient {
	out := make(map[string]fresco.Ingredient, len(recipe.Ingredients))
	for _, id := range recipe.IngredientIDs() {
		if ing, ok := app.store.Ingredient(id); ok {
			out[id] = ing
		}
	}
	return out
}

func printRecipes(out io.Writer, recipes []fresco.Recipe) error {
	if len(recipes) == 0 {
		_, err := fmt.Fprintln(out, "No recipes found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tKCAL\t")
	for _, r := range recipes {
		marker := ""
		if app.store.IsSelected(r.ID) {
			marker = " [in cart]"
		}
		fmt.Fprintf(w, "%s\t%s%s\t%s\t%.0f\t\n", r.ID, r.Name, marker, fresco.FormatTotalTime(r.TotalTime), r.Macros.Kcal())
	}
	return w.Flush()
}
