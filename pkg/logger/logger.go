package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ErrInvalidFormat is returned for an unknown log format.
var ErrInvalidFormat = errors.New("logger: invalid format")

// Config selects the level and encoding of the stdout handler.
type Config struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	Format string     `env:"LOG_FORMAT" envDefault:"json"`
}

// Validate reports an unsupported format.
func (c Config) Validate() error {
	switch c.Format {
	case "", FormatJSON, FormatText:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
}

// New creates a stdout logger with optional context extractors.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter is New writing to w.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewContextHandler(newHandler(w, cfg), extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
