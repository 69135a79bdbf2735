package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open returns the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg internal.StorageConfig, logger *slog.Logger) (KV, error) {
	switch cfg.Driver {
	case internal.StorageDriverMemory:
		logger.Warn("using in-memory storage; nothing survives this process")
		return NewMemoryKV(), nil
	case internal.StorageDriverSQLite, internal.StorageDriverPostgres:
		db, err := OpenGorm(cfg)
		if err != nil {
			return nil, err
		}
		kv := NewGormKV(db, cfg.OpTimeout)
		if cfg.AutoMigrate {
			if err := kv.Migrate(); err != nil {
				_ = kv.Close()
				return nil, fmt.Errorf("auto migrate: %w", err)
			}
		}
		logger.Debug("opened sql storage", "driver", cfg.Driver)
		return kv, nil
	case internal.StorageDriverRedis:
		kv, err := ConnectRedis(ctx, cfg.Redis, cfg.OpTimeout)
		if err != nil {
			return nil, err
		}
		logger.Debug("opened redis storage", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return kv, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// OpenGorm opens the sqlite or postgres database named by cfg.Source.
func OpenGorm(cfg internal.StorageConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case internal.StorageDriverPostgres:
		dialector = postgres.Open(cfg.Source)
	case internal.StorageDriverSQLite:
		dialector = sqlite.Open(cfg.Source)
	default:
		return nil, fmt.Errorf("driver %q is not a sql driver", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite has a single writer, and ":memory:" databases are per connection.
	if cfg.Driver == internal.StorageDriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	return db, nil
}
