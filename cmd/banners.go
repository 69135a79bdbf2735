package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/auth"
	"github.com/frahmantamala/marketplace-storefront/internal/banner"
	"github.com/spf13/cobra"
)

var bannerClear bool

var bannersCmd = &cobra.Command{
	Use:     "banners",
	Aliases: []string{"banner"},
	Short:   "Show and replace the top and footer banners",
}

var bannersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show both banner strips",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
		snap := a.store.Snapshot()
		if asJSON() {
			return printJSON(cmd.OutOrStdout(), map[string]banner.Slots{
				"top":    snap.TopBanners,
				"footer": snap.FooterBanners,
			})
		}
		tw := table(cmd.OutOrStdout(), "STRIP", "SLOT", "IMAGE")
		for _, strip := range []struct {
			name  string
			slots banner.Slots
		}{{"top", snap.TopBanners}, {"footer", snap.FooterBanners}} {
			for i, img := range strip.slots {
				shown := "(empty)"
				if img != nil {
					shown = *img
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", strip.name, i, shown)
			}
		}
		return tw.Flush()
	}),
}

var bannersSetCmd = &cobra.Command{
	Use:   "set <top|footer> <slot> [image]",
	Short: "Replace a banner slot, or empty it with --clear",
	Args:  cobra.RangeArgs(2, 3),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.require(auth.CapManageBanners); err != nil {
			return err
		}
		index, err := strconv.Atoi(args[1])
		if err != nil || index < 0 || index >= banner.SlotCount {
			return internal.NewValidationFieldError("slot", fmt.Sprintf("slot must be 0 to %d", banner.SlotCount-1), internal.ErrCodeValidationFailed)
		}

		var image *string
		switch {
		case bannerClear:
		case len(args) == 3:
			image = &args[2]
		default:
			return internal.NewValidationFieldError("image", "give an image or --clear", internal.ErrCodeInvalidImages)
		}

		switch args[0] {
		case "top":
			err = a.store.UpdateTopBanner(ctx, index, image)
		case "footer":
			err = a.store.UpdateFooterBanner(ctx, index, image)
		default:
			return internal.NewValidationFieldError("strip", "strip must be top or footer", internal.ErrCodeValidationFailed)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s banner slot %d\n", args[0], index)
		return nil
	}),
}

func init() {
	bannersSetCmd.Flags().BoolVar(&bannerClear, "clear", false, "empty the slot")

	bannersCmd.AddCommand(bannersListCmd, bannersSetCmd)
	rootCmd.AddCommand(bannersCmd)
}
