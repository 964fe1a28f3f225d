package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/internal/config"
)

func TestLoadFrom(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.LoadFrom(map[string]string{})
		require.NoError(t, err)

		require.Equal(t, ":8080", cfg.HTTP.Addr)
		require.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
		require.Equal(t, slog.LevelInfo, cfg.Log.Level)
		require.Equal(t, "json", cfg.Log.Format)
		require.Equal(t, "en", cfg.I18n.FallbackLocale)
		require.Equal(t, "pseudo", cfg.I18n.PseudoLocale)
		require.True(t, cfg.I18n.PseudoEnabled)
		require.True(t, cfg.I18n.EscapeParams)
		require.Equal(t, config.StorageMemory, cfg.Orders.Storage)
		require.Equal(t, slog.LevelWarn, cfg.Sentry.MinLevel)
		require.Equal(t, "schema_migrations", cfg.DB.MigrationsTable)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.LoadFrom(map[string]string{
			"HTTP_ADDR":            "127.0.0.1:9000",
			"LOG_LEVEL":            "DEBUG",
			"LOG_FORMAT":           "text",
			"I18N_DEFAULT_LOCALE":  "fr",
			"I18N_PSEUDO_ENABLED":  "false",
			"I18N_ESCAPE_PARAMS":   "false",
			"ORDERS_STORAGE":       "postgres",
			"ORDERS_PAYMENT_LIMIT": "500",
			"DATABASE_CONN_URL":    "postgres://localhost/orders",
		})
		require.NoError(t, err)

		require.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
		require.Equal(t, slog.LevelDebug, cfg.Log.Level)
		require.Equal(t, "fr", cfg.I18n.DefaultLocale)
		require.False(t, cfg.I18n.PseudoEnabled)
		require.False(t, cfg.I18n.EscapeParams)
		require.InDelta(t, 500.0, cfg.Orders.PaymentLimit, 0.001)
		require.Equal(t, "postgres://localhost/orders", cfg.DB.ConnectionString)
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadFrom(map[string]string{"HTTP_SHUTDOWN_TIMEOUT": "soon"})
		require.ErrorIs(t, err, config.ErrLoad)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad log format", func(c *config.Config) { c.Log.Format = "xml" }},
		{"empty address", func(c *config.Config) { c.HTTP.Addr = "" }},
		{"zero shutdown timeout", func(c *config.Config) { c.HTTP.ShutdownTimeout = 0 }},
		{"empty fallback", func(c *config.Config) { c.I18n.FallbackLocale = "" }},
		{"empty pseudo locale", func(c *config.Config) { c.I18n.PseudoLocale = "" }},
		{"pseudo equals fallback", func(c *config.Config) { c.I18n.PseudoLocale = "en" }},
		{"negative payment limit", func(c *config.Config) { c.Orders.PaymentLimit = -1 }},
		{"unknown storage", func(c *config.Config) { c.Orders.Storage = "redis" }},
		{"postgres without dsn", func(c *config.Config) { c.Orders.Storage = config.StoragePostgres }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := config.LoadFrom(map[string]string{})
			require.NoError(t, err)
			tt.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}

	t.Run("disabled pseudo locale may be empty", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.LoadFrom(map[string]string{"I18N_PSEUDO_ENABLED": "false"})
		require.NoError(t, err)
		cfg.I18n.PseudoLocale = ""
		require.NoError(t, cfg.Validate())
	})
}

func TestLoad(t *testing.T) {
	// Load writes to the process environment.
	t.Setenv("LOG_FORMAT", "")
	require.NoError(t, os.Unsetenv("LOG_FORMAT"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_FORMAT=text\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "text", cfg.Log.Format)

	t.Run("missing file is ignored", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
	})
}
