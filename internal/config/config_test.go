package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "local")
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Dataset.FetchTimeout)
	assert.False(t, cfg.Dataset.ReloadEnabled)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 25, cfg.Cases.PageSize)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "local")
	t.Setenv("PORT", "9090")
	t.Setenv("DATASET_PATH", "https://example.com/cases.csv")
	t.Setenv("DATASET_FETCH_TIMEOUT", "5s")
	t.Setenv("DATASET_RELOAD_ENABLED", "true")
	t.Setenv("AUTH_TOKEN_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CASES_PAGE_SIZE", "50")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "https://example.com/cases.csv", cfg.Dataset.Path)
	assert.Equal(t, 5*time.Second, cfg.Dataset.FetchTimeout)
	assert.True(t, cfg.Dataset.ReloadEnabled)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 50, cfg.Cases.PageSize)
}

func TestLoadRejectsEmptySecret(t *testing.T) {
	v := viper.New()
	v.Set("AUTH_SECRET", "")

	_, err := Load(v)
	assert.Error(t, err)
}

func TestNonPositivePageSizeFallsBack(t *testing.T) {
	t.Setenv("ENVIRONMENT", "local")
	t.Setenv("CASES_PAGE_SIZE", "0")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Cases.PageSize)
}

func TestLoadDefaultSecretOutsideLocal(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_SECRET")

	t.Setenv("AUTH_SECRET", "a-real-secret")
	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.Auth.Secret)
}

func TestLoadDefaultSecretAllowedLocally(t *testing.T) {
	t.Setenv("ENVIRONMENT", "local")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultAuthSecret, cfg.Auth.Secret)
}
