package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/storage/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "run the embedded sql migrations against the configured sql storage",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	switch cfg.Storage.Driver {
	case internal.StorageDriverSQLite, internal.StorageDriverPostgres:
	default:
		return fmt.Errorf("migrate: driver %q has no schema", cfg.Storage.Driver)
	}

	db, err := sqlx.Connect(cfg.Storage.SQLDriverName(), cfg.Storage.Source)
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(cfg.Storage.GooseDialect()); err != nil {
		return err
	}

	if migrateRollback {
		if err := goose.DownContext(ctx, db.DB, "."); err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Rolled back latest migration")
		return nil
	}

	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}
