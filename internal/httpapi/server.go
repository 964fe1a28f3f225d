// Package httpapi exposes the order desk over HTTP: a JSON API whose every
// message is localized, a server-rendered order page and endpoints for
// inspecting the translation catalog.
package httpapi

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/polyglot/internal/orders"
	"github.com/dmitrymomot/polyglot/middlewares"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/logger"
)

// Server holds the handler dependencies.
type Server struct {
	resolver *i18n.Resolver
	orders   *orders.Service
	log      *slog.Logger
	checks   map[string]CheckFunc
	page     *template.Template
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used by the request middleware and handlers.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithHealthCheck registers a readiness probe under name.
func WithHealthCheck(name string, check CheckFunc) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

// New returns the routed handler.
func New(resolver *i18n.Resolver, svc *orders.Service, opts ...Option) http.Handler {
	s := &Server{
		resolver: resolver,
		orders:   svc,
		log:      logger.NewNope(),
		checks:   make(map[string]CheckFunc),
		page:     pageTemplate,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middlewares.RequestID(),
		middlewares.I18n(s.resolver),
		middlewares.RequestLogger(s.log),
		middlewares.Recover(s.log, middlewares.WithRecoverHandler(s.panicResponse)),
	)

	r.Get("/healthz", livenessHandler)
	r.Get("/readyz", readinessHandler(s.checks, s.log))

	r.Get("/", s.orderPage)
	r.Get("/lang/{locale}", s.switchLanguage)

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.listOrders)
			r.Post("/", s.createOrder)
			r.Get("/{id}", s.getOrder)
			r.Put("/{id}", s.updateOrder)
			r.Delete("/{id}", s.deleteOrder)
			r.Post("/{id}/payments", s.payOrder)
		})

		r.Get("/locale", s.getLocale)
		r.Put("/locale", s.setLocale)

		r.Get("/i18n/resolve", s.resolveKey)
		r.Get("/i18n/coverage", s.coverage)
	})

	return r
}
