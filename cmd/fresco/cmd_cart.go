package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"fresco"
	"fresco/share"
	"fresco/shopping"
	"fresco/storage"
)

var (
	cartServings int
	exportToS3   bool
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the selected recipes and the shopping list",
	Long: `The cart holds the recipes picked for the week and how many servings of
each. Its ingredients are combined into one shopping list, summing amounts
of the same ingredient in the same unit.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		user, err := app.users.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			return fresco.ErrNotAuthenticated
		}
		app.store.FetchCart(cmd.Context())
		if !app.store.CartRestored() {
			return fmt.Errorf("failed to restore cart for %s, leaving it unchanged", user.Username)
		}
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add ID",
	Short: "Add a recipe to the cart, or change its servings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app.store.FetchRecipe(ctx, args[0])
		recipe := app.store.CurrentRecipe()
		if recipe == nil {
			return fmt.Errorf("recipe %s could not be loaded", args[0])
		}

		servings := cartServings
		if !cmd.Flags().Changed("servings") {
			servings = app.store.Servings(recipe.ID)
		}
		app.store.AddSelectedRecipe(ctx, fresco.SelectedRecipe{Recipe: *recipe, Servings: servings})
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d serving(s)\n", recipe.Name, app.store.Servings(recipe.ID))
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Take a recipe out of the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.store.IsSelected(args[0]) {
			return fmt.Errorf("recipe %s is not in the cart", args[0])
		}
		app.store.RemoveSelectedRecipe(cmd.Context(), args[0])
		return nil
	},
}

var cartIncCmd = &cobra.Command{
	Use:   "inc ID",
	Short: "Add one serving to a recipe in the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjust(cmd, args[0], app.store.IncrementServings)
	},
}

var cartDecCmd = &cobra.Command{
	Use:   "dec ID",
	Short: "Remove one serving from a recipe in the cart, down to one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjust(cmd, args[0], app.store.DecrementServings)
	},
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cart and its shopping list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, r := range app.store.SelectedRecipes() {
			fmt.Fprintf(w, "%s  %s x%d\n", r.ID, r.Name, r.Servings)
		}
		fmt.Fprintln(w)
		return renderShoppingList(cmd.Context(), w)
	},
}

var cartShopCmd = &cobra.Command{
	Use:   "shop INGREDIENT_ID",
	Short: "Check an ingredient off the shopping list, or back on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state := "to buy"
		if app.store.ToggleShopped(cmd.Context(), args[0]) {
			state = "shopped"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s marked %s\n", args[0], state)
		return nil
	},
}

var cartExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the shopping list to a file or an S3 object",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var buf bytes.Buffer
		if err := renderShoppingList(ctx, &buf); err != nil {
			return err
		}

		blob, dest, err := exportBlob(ctx)
		if err != nil {
			return err
		}
		if err := blob.Save(ctx, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to export shopping list: %w", err)
		}
		slog.Info("EXPORT: Shopping list written", "destination", dest, "bytes", buf.Len())
		fmt.Fprintf(cmd.OutOrStdout(), "Shopping list written to %s\n", dest)
		return nil
	},
}

var cartShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Post the shopping list to Slack",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		slack, err := share.NewSlack(app.exportConfig.SlackWebhookURL, app.httpClient)
		if err != nil {
			return err
		}
		app.store.FetchSelectedIngredients(ctx)
		if err := slack.Share(ctx, app.exportConfig.SlackChannel, "Shopping list", app.store.ShoppingList(), app.store.Shopped()); err != nil {
			return fmt.Errorf("failed to share shopping list: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Shopping list posted to %s\n", app.exportConfig.SlackChannel)
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVarP(&cartServings, "servings", "s", 1, "Number of servings")
	cartExportCmd.Flags().BoolVar(&exportToS3, "s3", false, "Upload to FRESCO_EXPORT_S3_BUCKET instead of writing FRESCO_EXPORT_PATH")
	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartIncCmd, cartDecCmd, cartListCmd, cartShopCmd, cartExportCmd, cartShareCmd)
}

func adjust(cmd *cobra.Command, recipeID string, fn func(context.Context, string) int) error {
	if !app.store.IsSelected(recipeID) {
		return fmt.Errorf("recipe %s is not in the cart", recipeID)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d serving(s)\n", recipeID, fn(cmd.Context(), recipeID))
	return nil
}

func renderShoppingList(ctx context.Context, w io.Writer) error {
	app.store.FetchSelectedIngredients(ctx)
	return shopping.Render(w, app.store.ShoppingList(), app.store.Shopped())
}

func exportBlob(ctx context.Context) (storage.Blob, string, error) {
	if !exportToS3 {
		return storage.NewFileBlob(app.exportConfig.Path), app.exportConfig.Path, nil
	}
	if app.exportConfig.S3Bucket == "" {
		return nil, "", fmt.Errorf("FRESCO_EXPORT_S3_BUCKET must be set to export to S3")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load AWS config: %w", err)
	}
	blob := storage.NewS3Blob(s3.NewFromConfig(awsCfg), app.exportConfig.S3Bucket, app.exportConfig.S3Key, "text/plain; charset=utf-8")
	return blob, fmt.Sprintf("s3://%s/%s", app.exportConfig.S3Bucket, app.exportConfig.S3Key), nil
}

// restoreCart loads the signed-in user's cart so listings can mark selected recipes.
func restoreCart(ctx context.Context) {
	user, err := app.users.CurrentUser(ctx)
	if err != nil || user == nil {
		return
	}
	app.store.FetchCart(ctx)
}
