package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App           AppConfig
	Log           LogConfig
	Storage       StorageConfig
	Session       SessionConfig
	Notifications NotificationConfig
	Accounts      AccountsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StorageConfig holds durable key-value store settings
type StorageConfig struct {
	Driver string // memory or sqlite
	Path   string // sqlite database file path
}

// SessionConfig holds session settings
type SessionConfig struct {
	CookieTTL time.Duration // legacy role cookie lifetime
}

// NotificationConfig holds notification feed settings
type NotificationConfig struct {
	TTL time.Duration // how long a notification stays in the feed
}

// BuiltinAccountConfig holds one fixed credential pair
type BuiltinAccountConfig struct {
	Email       string
	Password    string
	DisplayName string
}

// AccountsConfig holds the builtin account credentials
type AccountsConfig struct {
	Admin     BuiltinAccountConfig
	Warehouse BuiltinAccountConfig
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with STOREFRONT_ prefix (e.g., STOREFRONT_STORAGE_PATH)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Storage: StorageConfig{
			Driver: v.GetString("storage.driver"),
			Path:   v.GetString("storage.path"),
		},
		Session: SessionConfig{
			CookieTTL: v.GetDuration("session.cookie_ttl"),
		},
		Notifications: NotificationConfig{
			TTL: v.GetDuration("notifications.ttl"),
		},
		Accounts: AccountsConfig{
			Admin: BuiltinAccountConfig{
				Email:       v.GetString("accounts.admin.email"),
				Password:    v.GetString("accounts.admin.password"),
				DisplayName: v.GetString("accounts.admin.display_name"),
			},
			Warehouse: BuiltinAccountConfig{
				Email:       v.GetString("accounts.warehouse.email"),
				Password:    v.GetString("accounts.warehouse.password"),
				DisplayName: v.GetString("accounts.warehouse.display_name"),
			},
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storefront"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "storefront.db"
	}
	if cfg.Session.CookieTTL == 0 {
		cfg.Session.CookieTTL = 24 * time.Hour
	}
	if cfg.Notifications.TTL == 0 {
		cfg.Notifications.TTL = 5 * time.Second
	}
	if cfg.Accounts.Admin.Email == "" {
		cfg.Accounts.Admin.Email = "admin@gmail.com"
	}
	if cfg.Accounts.Admin.Password == "" {
		cfg.Accounts.Admin.Password = "12345"
	}
	if cfg.Accounts.Admin.DisplayName == "" {
		cfg.Accounts.Admin.DisplayName = "Admin User"
	}
	if cfg.Accounts.Warehouse.Email == "" {
		cfg.Accounts.Warehouse.Email = "warehouse@gmail.com"
	}
	if cfg.Accounts.Warehouse.Password == "" {
		cfg.Accounts.Warehouse.Password = "123456"
	}
	if cfg.Accounts.Warehouse.DisplayName == "" {
		cfg.Accounts.Warehouse.DisplayName = "Warehouse Manager"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("storage.driver must be 'memory' or 'sqlite', got %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for the sqlite driver")
	}
	if c.Session.CookieTTL < 0 {
		return fmt.Errorf("session.cookie_ttl cannot be negative")
	}
	if c.Notifications.TTL < 0 {
		return fmt.Errorf("notifications.ttl cannot be negative")
	}
	return nil
}
