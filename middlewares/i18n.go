package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/logger"
)

type translatorKey struct{}

// DefaultLocaleParam is the query parameter and cookie name read by the
// default locale extractor.
const DefaultLocaleParam = "lang"

// I18nConfig configures the I18n middleware.
type I18nConfig struct {
	Extractor    Extractor
	extractorSet bool
}

// I18nOption configures I18nConfig.
type I18nOption func(*I18nConfig)

// WithI18nExtractor sets a custom locale extractor chain.
func WithI18nExtractor(ext Extractor) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// I18n returns middleware that resolves the request locale, binds a
// Translator to it and stores the Translator in the request context.
//
// The default chain is ?lang, the lang cookie, then Accept-Language. A
// candidate is accepted only when the resolver has a set for it (or for its
// base language); with no accepted candidate the resolver's active locale is
// used.
func I18n(r *i18n.Resolver, opts ...I18nOption) func(http.Handler) http.Handler {
	cfg := &I18nConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.extractorSet {
		cfg.Extractor = NewExtractor(
			FromQuery(DefaultLocaleParam),
			FromCookie(DefaultLocaleParam),
			FromAcceptLanguage(r.Locales()),
		)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			locale, _ := cfg.Extractor.Extract(req, r.HasLocale)
			tr := r.Translator(locale)
			w.Header().Set("Content-Language", tr.Locale())
			next.ServeHTTP(w, req.WithContext(WithTranslator(req.Context(), tr)))
		})
	}
}

// WithTranslator returns a copy of ctx carrying tr.
func WithTranslator(ctx context.Context, tr *i18n.Translator) context.Context {
	return context.WithValue(ctx, translatorKey{}, tr)
}

// GetTranslator extracts the Translator from the context.
// Returns nil if the I18n middleware is not used.
func GetTranslator(ctx context.Context) *i18n.Translator {
	if v, ok := ctx.Value(translatorKey{}).(*i18n.Translator); ok {
		return v
	}
	return nil
}

// GetLocale extracts the request locale from the context.
// Returns an empty string if the I18n middleware is not used.
func GetLocale(ctx context.Context) string {
	if tr := GetTranslator(ctx); tr != nil {
		return tr.Locale()
	}
	return ""
}

// LocaleExtractor returns a ContextExtractor that adds "locale" to every
// log entry.
func LocaleExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetLocale(ctx); v != "" {
			return slog.String("locale", v), true
		}
		return slog.Attr{}, false
	}
}
