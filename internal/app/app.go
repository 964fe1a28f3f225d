// Package app assembles the order desk from its configuration: resolver,
// order store, HTTP handler and server lifecycle.
package app

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrymomot/polyglot/internal/config"
	"github.com/dmitrymomot/polyglot/internal/httpapi"
	"github.com/dmitrymomot/polyglot/internal/orders"
	"github.com/dmitrymomot/polyglot/internal/server"
	"github.com/dmitrymomot/polyglot/locales"
	"github.com/dmitrymomot/polyglot/pkg/db"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/sanitizer"
)

// App is a ready-to-run order desk.
type App struct {
	cfg      config.Config
	log      *slog.Logger
	resolver *i18n.Resolver
	handler  http.Handler
	hooks    []server.Hook
}

// New builds the App. With postgres storage it connects, migrates and
// registers the pool for readiness checks and shutdown.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	resolver, err := NewResolver(cfg.I18n, log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log, resolver: resolver}

	var (
		repo     orders.Repository = orders.NewMemoryRepository()
		httpOpts                   = []httpapi.Option{httpapi.WithLogger(log)}
	)
	if cfg.Orders.Storage == config.StoragePostgres {
		pool, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, pool, orders.Migrations(), cfg.DB.MigrationsTable, log); err != nil {
			pool.Close()
			return nil, err
		}
		repo = orders.NewPostgresRepository(pool)
		httpOpts = append(httpOpts, httpapi.WithHealthCheck("postgres", db.Healthcheck(pool)))
		a.hooks = append(a.hooks, db.Shutdown(pool))
	}

	svc := orders.NewService(repo,
		orders.WithLogger(log),
		orders.WithGateway(orders.SimulatedGateway{Limit: cfg.Orders.PaymentLimit}),
	)
	a.handler = httpapi.New(resolver, svc, httpOpts...)

	log.Info("order desk ready",
		slog.String("storage", cfg.Orders.Storage),
		slog.Any("locales", resolver.Locales()),
		slog.String("active_locale", resolver.Locale()),
	)
	return a, nil
}

// Handler returns the routed HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Resolver returns the translation resolver.
func (a *App) Resolver() *i18n.Resolver {
	return a.resolver
}

// Run serves until ctx is cancelled or the process is signalled.
func (a *App) Run(ctx context.Context, opts ...server.Option) error {
	base := []server.Option{
		server.WithAddress(a.cfg.HTTP.Addr),
		server.WithLogger(a.log),
		server.WithShutdownTimeout(a.cfg.HTTP.ShutdownTimeout),
	}
	for _, hook := range a.hooks {
		base = append(base, server.WithShutdownHook(hook))
	}
	return server.Run(ctx, a.handler, append(base, opts...)...)
}

// NewResolver builds the resolver from the i18n settings: the embedded
// catalog (or LocalesDir), default formatters, optional pseudo-locale and
// parameter escaping. Missing keys log at DEBUG, degraded formatting at WARN.
func NewResolver(cfg config.I18n, log *slog.Logger) (*i18n.Resolver, error) {
	var catalog fs.FS = locales.FS()
	if cfg.LocalesDir != "" {
		catalog = os.DirFS(cfg.LocalesDir)
	}

	opts := []i18n.Option{
		i18n.WithFallbackLocale(cfg.FallbackLocale),
		i18n.WithDir(catalog),
		i18n.WithDefaultFormatters(),
		i18n.WithMissingKeyHandler(func(locale, key string) {
			log.Debug("translation missing", slog.String("locale", locale), slog.String("key", key))
		}),
		i18n.WithDegradedHandler(func(d i18n.Degradation) {
			log.Warn("formatting degraded",
				slog.String("locale", d.Locale),
				slog.String("key", d.Key),
				slog.String("param", d.Param),
				slog.String("hint", d.Hint),
				slog.Any("error", d.Err),
			)
		}),
	}
	if cfg.DefaultLocale != "" {
		opts = append(opts, i18n.WithDefaultLocale(cfg.DefaultLocale))
	}
	if cfg.PseudoEnabled {
		opts = append(opts, i18n.WithPseudoLocale(cfg.PseudoLocale, "", ""))
	}
	if cfg.EscapeParams {
		opts = append(opts, i18n.WithParamEscaper(sanitizer.EscapeParam))
	}
	return i18n.New(opts...)
}
