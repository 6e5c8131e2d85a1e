package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "storefront", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "storefront.db", cfg.Storage.Path)
	assert.Equal(t, 24*time.Hour, cfg.Session.CookieTTL)
	assert.Equal(t, 5*time.Second, cfg.Notifications.TTL)
	assert.Equal(t, "admin@gmail.com", cfg.Accounts.Admin.Email)
	assert.Equal(t, "Admin User", cfg.Accounts.Admin.DisplayName)
	assert.Equal(t, "warehouse@gmail.com", cfg.Accounts.Warehouse.Email)
	assert.Equal(t, "Warehouse Manager", cfg.Accounts.Warehouse.DisplayName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "memory")
	t.Setenv("STOREFRONT_LOG_LEVEL", "debug")
	t.Setenv("STOREFRONT_SESSION_COOKIE_TTL", "1h")
	t.Setenv("STOREFRONT_ACCOUNTS_ADMIN_EMAIL", "root@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, time.Hour, cfg.Session.CookieTTL)
	assert.Equal(t, "root@example.com", cfg.Accounts.Admin.Email)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")
}

func TestLoad_RejectsNegativeTTL(t *testing.T) {
	t.Setenv("STOREFRONT_NOTIFICATIONS_TTL", "-5s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notifications.ttl")
}
