// Package middlewares provides net/http middleware for the order desk:
// request ids, request logging, per-request locale negotiation and panic
// recovery with a localized error response.
//
// Recommended order, outermost first:
//
//	r.Use(
//		middlewares.RequestID(),
//		middlewares.I18n(resolver),
//		middlewares.RequestLogger(log),
//		middlewares.Recover(log),
//	)
//
// RequestLogger runs inside I18n so completion entries carry the locale, and
// Recover runs inside both so the panic response is localized and logged
// with its final status.
package middlewares
