package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel     slog.Level    `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
	FlushTimeout time.Duration `env:"SENTRY_FLUSH_TIMEOUT" envDefault:"2s"`
}

// NewWithSentry creates a logger that writes to stdout and Sentry. The
// returned flush func drains buffered Sentry events and must run before exit.
// If DSN is empty, only stdout logging is enabled (graceful fallback for local dev).
func NewWithSentry(cfg Config, scfg SentryConfig, extractors ...ContextExtractor) (*slog.Logger, func()) {
	stdout := newHandler(os.Stdout, cfg)
	noop := func() {}

	if scfg.DSN == "" {
		return slog.New(NewContextHandler(stdout, extractors...)), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         scfg.DSN,
		Environment: scfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		// Graceful degradation: log to stdout if Sentry init fails
		slog.New(stdout).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewContextHandler(stdout, extractors...)), noop
	}

	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if scfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: eventLevel, // Errors create Issues in Sentry
		LogLevel:   logLevel,   // Logs stored for context/search
	}.NewSentryHandler(context.Background())

	flush := func() {
		timeout := scfg.FlushTimeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		sentry.Flush(timeout)
	}

	return slog.New(NewContextHandler(fanout{stdout, sentryHandler}, extractors...)), flush
}
