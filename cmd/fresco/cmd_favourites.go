package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favouritesCursor string

var favouriteCmd = &cobra.Command{
	Use:   "favourite",
	Short: "Mark or unmark a recipe as favourite",
}

var favouriteAddCmd = &cobra.Command{
	Use:   "add ID",
	Short: "Add a recipe to favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.store.AddFavourite(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favourites\n", args[0])
		return nil
	},
}

var favouriteRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a recipe from favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.store.RemoveFavourite(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favourites\n", args[0])
		return nil
	},
}

var favouritesCmd = &cobra.Command{
	Use:   "favourites",
	Short: "List favourite recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.store.FetchFavourites(cmd.Context(), favouritesCursor)
		if err := printRecipes(cmd.OutOrStdout(), app.store.Favourites()); err != nil {
			return err
		}
		if next := app.store.FavouritesLastEvaluatedID(); next != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\nMore favourites: fresco favourites --cursor %s\n", next)
		}
		return nil
	},
}

func init() {
	favouritesCmd.Flags().StringVar(&favouritesCursor, "cursor", "", "Last evaluated id of the previous page")
	favouriteCmd.AddCommand(favouriteAddCmd, favouriteRemoveCmd)
}
