package middlewares

import (
	"net/http"

	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

// LocaleSource reads a candidate locale from a request.
// Returns the value and true if found, or ("", false) if not present.
type LocaleSource func(r *http.Request) (string, bool)

// Extractor tries multiple sources in order and returns the first match
// accepted by the filter.
type Extractor struct {
	sources []LocaleSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...LocaleSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value for which accept reports true.
// A nil accept admits every value.
func (e Extractor) Extract(r *http.Request, accept func(string) bool) (string, bool) {
	for _, src := range e.sources {
		v, ok := src(r)
		if !ok || v == "" {
			continue
		}
		if accept == nil || accept(v) {
			return v, true
		}
	}
	return "", false
}

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) LocaleSource {
	return func(r *http.Request) (string, bool) {
		v := r.URL.Query().Get(name)
		return v, v != ""
	}
}

// FromCookie returns a source that reads from a plain cookie.
func FromCookie(name string) LocaleSource {
	return func(r *http.Request) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) LocaleSource {
	return func(r *http.Request) (string, bool) {
		v := r.Header.Get(name)
		return v, v != ""
	}
}

// FromAcceptLanguage returns a source that matches the Accept-Language
// header against available. A header with no matching entry is treated as
// absent so later sources still apply.
func FromAcceptLanguage(available []string) LocaleSource {
	return func(r *http.Request) (string, bool) {
		header := r.Header.Get("Accept-Language")
		if header == "" {
			return "", false
		}
		return i18n.MatchAcceptLanguage(header, available)
	}
}
