package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/marketplace-storefront/internal/auth"
	"github.com/frahmantamala/marketplace-storefront/internal/product"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"category"},
	Short:   "List and add categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their publication counts",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
		snap := a.store.Snapshot()
		if asJSON() {
			return printJSON(cmd.OutOrStdout(), snap.Categories)
		}
		tw := table(cmd.OutOrStdout(), "ID", "NAME", "PUBLICATIONS")
		for _, c := range snap.Categories {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", c.ID, c.Name, len(product.InCategory(snap.Products, c.Name)))
		}
		return tw.Flush()
	}),
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.require(auth.CapManageCategories); err != nil {
			return err
		}
		c, err := a.store.AddCategory(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added category %s (%s)\n", c.Name, c.ID)
		return nil
	}),
}

func init() {
	categoriesCmd.AddCommand(categoriesListCmd, categoriesAddCmd)
	rootCmd.AddCommand(categoriesCmd)
}
