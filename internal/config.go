package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"

	HydrationPolicyIsolate = "isolate"
	HydrationPolicyReset   = "reset"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Hydration HydrationConfig `mapstructure:"hydration"`
	Security  SecurityConfig  `mapstructure:"security"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type StorageConfig struct {
	Driver       string        `mapstructure:"driver" validate:"required,oneof=memory sqlite postgres redis"`
	Source       string        `mapstructure:"source"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	OpTimeout    time.Duration `mapstructure:"op_timeout"`
	AutoMigrate  bool          `mapstructure:"auto_migrate"`
	Redis        RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type HydrationConfig struct {
	Policy string `mapstructure:"policy" validate:"oneof=isolate reset"`
}

type SecurityConfig struct {
	BCryptCost       int  `mapstructure:"bcrypt_cost" validate:"min=4,max=15"`
	HashNewPasswords bool `mapstructure:"hash_new_passwords"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// DefaultConfig is what a fresh checkout runs with: a local sqlite file.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{Env: "development"},
		Storage: StorageConfig{
			Driver:       StorageDriverSQLite,
			Source:       "storefront.db",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			OpTimeout:    5 * time.Second,
			AutoMigrate:  true,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "storefront:",
			},
		},
		Hydration: HydrationConfig{Policy: HydrationPolicyIsolate},
		Security:  SecurityConfig{BCryptCost: 10},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfigFromEnv reads configuration from environment variables (container deployment).
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()

	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)

	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.Source = getEnv("STORAGE_SOURCE", cfg.Storage.Source)
	cfg.Storage.MaxOpenConns = getEnvAsInt("STORAGE_MAX_OPEN_CONNS", cfg.Storage.MaxOpenConns)
	cfg.Storage.MaxIdleConns = getEnvAsInt("STORAGE_MAX_IDLE_CONNS", cfg.Storage.MaxIdleConns)
	cfg.Storage.OpTimeout = getEnvAsDuration("STORAGE_OP_TIMEOUT", cfg.Storage.OpTimeout)
	cfg.Storage.AutoMigrate = getEnvAsBool("STORAGE_AUTO_MIGRATE", cfg.Storage.AutoMigrate)
	cfg.Storage.Redis.Addr = getEnv("REDIS_ADDR", cfg.Storage.Redis.Addr)
	cfg.Storage.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Storage.Redis.Password)
	cfg.Storage.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Storage.Redis.DB)
	cfg.Storage.Redis.Prefix = getEnv("REDIS_PREFIX", cfg.Storage.Redis.Prefix)

	cfg.Hydration.Policy = getEnv("HYDRATION_POLICY", cfg.Hydration.Policy)

	cfg.Security.BCryptCost = getEnvAsInt("BCRYPT_COST", cfg.Security.BCryptCost)
	cfg.Security.HashNewPasswords = getEnvAsBool("HASH_NEW_PASSWORDS", cfg.Security.HashNewPasswords)

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	return cfg
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if err := c.Hydration.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("hydration config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverMemory:
		return nil
	case StorageDriverSQLite, StorageDriverPostgres:
		if c.Source == "" {
			return fmt.Errorf("source is required for driver %s", c.Driver)
		}
		if c.MaxIdleConns > c.MaxOpenConns {
			return errors.New("max_idle_conns cannot be greater than max_open_conns")
		}
	case StorageDriverRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required for driver redis")
		}
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.OpTimeout < 0 {
		return errors.New("op_timeout cannot be negative")
	}
	return nil
}

// GooseDialect maps the storage driver onto the dialect name goose expects.
func (c *StorageConfig) GooseDialect() string {
	if c.Driver == StorageDriverPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// SQLDriverName is the database/sql driver registered for the storage driver.
func (c *StorageConfig) SQLDriverName() string {
	if c.Driver == StorageDriverPostgres {
		return "pgx"
	}
	return "sqlite3"
}

func (c *HydrationConfig) Validate() error {
	switch c.Policy {
	case "", HydrationPolicyIsolate, HydrationPolicyReset:
		return nil
	}
	return fmt.Errorf("policy must be %q or %q, got %q", HydrationPolicyIsolate, HydrationPolicyReset, c.Policy)
}

func (c *SecurityConfig) Validate() error {
	if c.HashNewPasswords && (c.BCryptCost < 4 || c.BCryptCost > 15) {
		return errors.New("bcrypt_cost must be between 4 and 15")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q", c.Level)
	}
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("invalid format %q", c.Format)
	}
	return nil
}
