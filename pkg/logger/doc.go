// Package logger provides structured logging with context extraction and Sentry integration.
//
// It builds on log/slog: Config picks the level and the JSON or text
// encoding, ContextHandler injects request-scoped attributes through
// ContextExtractor funcs, and NewWithSentry fans records out to Sentry.
//
// # Basic Usage
//
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(logger.Config{Level: slog.LevelDebug}, requestID)
//	log.InfoContext(ctx, "order created", slog.String("order_id", id))
//	// {"level":"INFO","msg":"order created","order_id":"...","request_id":"abc-123"}
//
// # Sentry Integration
//
//	log, flush := logger.NewWithSentry(cfg, logger.SentryConfig{DSN: dsn}, requestID)
//	defer flush()
//
// Errors create Issues in Sentry and warnings are stored as logs. If the DSN
// is empty, or the SDK fails to initialize, the logger falls back to stdout
// only, so the same code path works in development and production.
package logger
