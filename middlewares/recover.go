package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// InternalErrorKey is the translation key of the default panic response.
const InternalErrorKey = "error.internal"

// PanicHandler writes the response for a recovered panic.
type PanicHandler func(w http.ResponseWriter, r *http.Request, pe *PanicError)

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int          // Max stack trace size (default: 4096)
	DisablePrintStack bool         // Disable stack trace in logs
	Handler           PanicHandler // Response writer (default: localized plain-text 500)
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack trace in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// WithRecoverHandler replaces the panic response writer.
func WithRecoverHandler(h PanicHandler) RecoverOption {
	return func(cfg *RecoverConfig) {
		if h != nil {
			cfg.Handler = h
		}
	}
}

// Recover returns middleware that recovers from panics, logs them at ERROR
// with the stack trace and answers 500. http.ErrAbortHandler is re-raised so
// net/http can abort the connection.
func Recover(log *slog.Logger, opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
		Handler:   localizedInternalError,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				pe := &PanicError{Value: rec}
				attrs := []any{slog.Any("panic", rec)}
				if !cfg.DisablePrintStack {
					stack := make([]byte, cfg.StackSize)
					pe.Stack = stack[:runtime.Stack(stack, false)]
					attrs = append(attrs, slog.String("stack", string(pe.Stack)))
				}
				log.ErrorContext(r.Context(), "panic recovered", attrs...)

				if sr, ok := w.(interface{ Written() bool }); ok && sr.Written() {
					return
				}
				cfg.Handler(w, r, pe)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func localizedInternalError(w http.ResponseWriter, r *http.Request, _ *PanicError) {
	msg := http.StatusText(http.StatusInternalServerError)
	if tr := GetTranslator(r.Context()); tr != nil {
		msg = tr.T(InternalErrorKey)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(msg))
}
