// Package config loads the order desk configuration from the environment,
// after merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/polyglot/pkg/db"
	"github.com/dmitrymomot/polyglot/pkg/logger"
)

// Storage backends for orders.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

var (
	ErrLoad    = errors.New("config: failed to load configuration")
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config is the complete service configuration.
type Config struct {
	HTTP   HTTP
	Log    logger.Config
	Sentry logger.SentryConfig
	I18n   I18n
	Orders Orders
	DB     db.Config
}

// HTTP configures the listener.
type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// I18n configures the resolver.
type I18n struct {
	DefaultLocale  string `env:"I18N_DEFAULT_LOCALE"`
	FallbackLocale string `env:"I18N_FALLBACK_LOCALE" envDefault:"en"`
	PseudoLocale   string `env:"I18N_PSEUDO_LOCALE" envDefault:"pseudo"`
	PseudoEnabled  bool   `env:"I18N_PSEUDO_ENABLED" envDefault:"true"`
	// Directory of locale files; empty uses the embedded catalog.
	LocalesDir   string `env:"I18N_LOCALES_DIR"`
	EscapeParams bool   `env:"I18N_ESCAPE_PARAMS" envDefault:"true"`
}

// Orders configures the order store and payment simulation.
type Orders struct {
	Storage string `env:"ORDERS_STORAGE" envDefault:"memory"`
	// Charges above the limit are declined; 0 approves everything.
	PaymentLimit float64 `env:"ORDERS_PAYMENT_LIMIT" envDefault:"0"`
}

// Load merges the given .env files (".env" when none are named; missing
// files are ignored) into the process environment, then parses and
// validates the configuration.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Join(ErrLoad, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrLoad, err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses the configuration from environ instead of the process
// environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, errors.Join(ErrLoad, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return errors.Join(ErrInvalid, err)
	}
	switch {
	case c.HTTP.Addr == "":
		return fmt.Errorf("%w: HTTP_ADDR is empty", ErrInvalid)
	case c.HTTP.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: HTTP_SHUTDOWN_TIMEOUT must be positive", ErrInvalid)
	case c.I18n.FallbackLocale == "":
		return fmt.Errorf("%w: I18N_FALLBACK_LOCALE is empty", ErrInvalid)
	case c.I18n.PseudoEnabled && c.I18n.PseudoLocale == "":
		return fmt.Errorf("%w: I18N_PSEUDO_LOCALE is empty", ErrInvalid)
	case c.I18n.PseudoEnabled && c.I18n.PseudoLocale == c.I18n.FallbackLocale:
		return fmt.Errorf("%w: pseudo locale %q cannot be the fallback", ErrInvalid, c.I18n.PseudoLocale)
	case c.Orders.PaymentLimit < 0:
		return fmt.Errorf("%w: ORDERS_PAYMENT_LIMIT cannot be negative", ErrInvalid)
	}

	switch c.Orders.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DB.ConnectionString == "" {
			return fmt.Errorf("%w: DATABASE_CONN_URL is required for postgres storage", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown ORDERS_STORAGE %q", ErrInvalid, c.Orders.Storage)
	}
	return nil
}
