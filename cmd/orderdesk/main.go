// Command orderdesk serves the localized order desk.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/polyglot/internal/app"
	"github.com/dmitrymomot/polyglot/internal/config"
	"github.com/dmitrymomot/polyglot/middlewares"
	"github.com/dmitrymomot/polyglot/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "orderdesk: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, flush := logger.NewWithSentry(cfg.Log, cfg.Sentry,
		middlewares.RequestIDExtractor(),
		middlewares.LocaleExtractor(),
	)
	defer flush()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", slog.Any("error", err))
		return err
	}
	return a.Run(ctx)
}
