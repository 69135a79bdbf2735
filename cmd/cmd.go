package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/auth"
	"github.com/frahmantamala/marketplace-storefront/internal/core/events"
	"github.com/frahmantamala/marketplace-storefront/internal/storage"
	"github.com/frahmantamala/marketplace-storefront/internal/store"
	"github.com/frahmantamala/marketplace-storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath  string
	clearData   bool
	traceEvents bool
	dumpMetrics bool
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Marketplace storefront",
	Long:          `Browse the catalog, manage the cart and favorites, and administer the storefront from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func describeError(err error) string {
	if appErr, ok := internal.IsAppError(err); ok {
		return fmt.Sprintf("%s: %s", appErr.Code, appErr.GetDetailedMessage())
	}
	return err.Error()
}

func loadConfig(path string) (*internal.Config, error) {
	// Check if we're running in Docker environment
	if os.Getenv("APP_ENV") == "production" || os.Getenv("DOCKER_ENV") == "true" {
		cfg := internal.LoadConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("error validating config from environment: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("ENV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := internal.DefaultConfig()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return cfg, nil
}

// app is what every command works against: a hydrated store on the configured backend.
type app struct {
	cfg      *internal.Config
	kv       storage.KV
	store    *store.Store
	checker  auth.PermissionChecker
	logger   *slog.Logger
	registry *prometheus.Registry
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.App.Env, logger.WithLevel(cfg.Logging.Level), logger.WithFormat(cfg.Logging.Format))
	log := logger.LoggerWrapper()

	kv, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	registry := prometheus.NewRegistry()
	bus := events.NewEventBus(log)
	s := store.New(kv,
		store.WithLogger(log),
		store.WithEventBus(bus),
		store.WithRegisterer(registry),
		store.WithHydrationPolicy(cfg.Hydration.Policy),
		store.WithSecurity(cfg.Security),
	)
	if traceEvents {
		traceStoreEvents(bus, log)
	}

	if err := s.Hydrate(ctx); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to hydrate store: %w", err)
	}

	return &app{
		cfg:      cfg,
		kv:       kv,
		store:    s,
		checker:  auth.NewPermissionChecker(),
		logger:   log,
		registry: registry,
	}, nil
}

var openAppFunc = openApp

func (a *app) Close() error {
	if dumpMetrics {
		if err := writeMetrics(os.Stderr, a.registry); err != nil {
			a.logger.Warn("failed to write metrics", "error", err)
		}
	}
	return a.kv.Close()
}

// require fails unless the signed-in user holds capability.
func (a *app) require(capability auth.Capability) error {
	return a.checker.Require(a.store.Session(), capability)
}

// withApp wraps a command body with opening and closing the store. Each
// invocation gets a trace id and the session user id on its context, and a
// panic is logged with its stack and returned as an internal error.
func withApp(run func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		defer func() {
			if r := recover(); r != nil {
				logger.From(ctx).Error("panic recovered", "error", r, "stack", string(debug.Stack()))
				err = internal.NewInternalError("unexpected failure", fmt.Errorf("panic: %v", r))
			}
		}()

		a, err := openAppFunc(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := a.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close storage: %w", closeErr)
			}
		}()

		ctx = logger.With(ctx, "traceID", uuid.NewString(), "command", cmd.CommandPath())
		ctx = internal.ContextWithSessionID(ctx, a.store.Session().ID)

		return run(ctx, a, cmd, args)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "directory containing config.yml")
	rootCmd.PersistentFlags().BoolVar(&traceEvents, "trace-events", false, "log every store change event")
	rootCmd.PersistentFlags().BoolVar(&dumpMetrics, "metrics", false, "print store metrics to stderr on exit")

	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
