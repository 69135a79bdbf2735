package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/cart"
	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit the cart",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the cart and its total",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
		snap := a.store.Snapshot()
		if asJSON() {
			return printJSON(cmd.OutOrStdout(), struct {
				Items interface{} `json:"items"`
				Count int         `json:"count"`
				Total interface{} `json:"total"`
			}{snap.Cart, cart.Count(snap.Cart), snap.CartTotal})
		}
		tw := table(cmd.OutOrStdout(), "ID", "NAME", "UNIT", "QTY", "SUBTOTAL")
		for _, it := range snap.Cart {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				it.ID, it.Name, it.EffectivePrice().StringFixed(2), it.Quantity, it.Subtotal().StringFixed(2))
		}
		fmt.Fprintf(tw, "\t\tTOTAL\t%d\t%s\n", cart.Count(snap.Cart), snap.CartTotal.StringFixed(2))
		return tw.Flush()
	}),
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add one unit of a product",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		p, err := findProduct(a.store, args[0])
		if err != nil {
			return err
		}
		if err := a.store.AddToCart(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s, total %s\n", p.Name, a.store.CartTotal().StringFixed(2))
		return nil
	}),
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id> <quantity>",
	Short: "Set the quantity of a cart line; 0 removes it",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return internal.NewValidationFieldError("quantity", fmt.Sprintf("%q is not a whole number", args[1]), internal.ErrCodeValidationFailed)
		}
		if err := a.store.UpdateCartItemQuantity(ctx, args[0], qty); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Total %s\n", a.store.CartTotal().StringFixed(2))
		return nil
	}),
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.store.RemoveFromCart(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Total %s\n", a.store.CartTotal().StringFixed(2))
		return nil
	}),
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
		if err := a.store.ClearCart(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cart emptied")
		return nil
	}),
}

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Show and toggle favorites",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites in the order they were added",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
		return printProducts(cmd.OutOrStdout(), a.store.Snapshot().Favorites)
	}),
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <product-id>",
	Short: "Add or remove a favorite",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		p, err := findProduct(a.store, args[0])
		if err != nil {
			return err
		}
		now, err := a.store.ToggleFavorite(ctx, p)
		if err != nil {
			return err
		}
		if now {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites\n", p.Name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", p.Name)
		}
		return nil
	}),
}

func init() {
	cartCmd.AddCommand(cartListCmd, cartAddCmd, cartSetCmd, cartRemoveCmd, cartClearCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesToggleCmd)
	rootCmd.AddCommand(cartCmd, favoritesCmd)
}
