package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/marketplace-storefront/internal/storage"
	"github.com/frahmantamala/marketplace-storefront/internal/store"
	"github.com/frahmantamala/marketplace-storefront/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the storefront with the default catalog",
	Long:  `Write the default users, categories, products and banners to storage. Slices already stored are kept unless --clear is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		logger.Init(cfg.App.Env, logger.WithLevel(cfg.Logging.Level), logger.WithFormat(cfg.Logging.Format))
		log := logger.LoggerWrapper()

		kv, err := storage.Open(ctx, cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer kv.Close()

		if clearData {
			if err := kv.Clear(ctx); err != nil {
				return fmt.Errorf("failed to clear storage: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared stored slices")
		}

		s := store.New(kv, store.WithLogger(log), store.WithHydrationPolicy(cfg.Hydration.Policy))
		if err := s.Hydrate(ctx); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}

		snap := s.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users, %d categories, %d products\n",
			len(snap.Users), len(snap.Categories), len(snap.Products))
		return nil
	},
}
