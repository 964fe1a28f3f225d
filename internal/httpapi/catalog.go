package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/polyglot/middlewares"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

const (
	keyUnknownLocale = "error.unknown_locale"
	keyMissingKey    = "error.missing_key"

	localeCookieMaxAge = 365 * 24 * time.Hour
)

type localeResponse struct {
	Locale   string   `json:"locale"`
	Fallback string   `json:"fallback"`
	Pseudo   string   `json:"pseudo,omitempty"`
	Locales  []string `json:"locales"`
	Request  string   `json:"request_locale,omitempty"`
	Message  string   `json:"message,omitempty"`
}

func (s *Server) localeState() localeResponse {
	return localeResponse{
		Locale:   s.resolver.Locale(),
		Fallback: s.resolver.FallbackLocale(),
		Pseudo:   s.resolver.PseudoLocale(),
		Locales:  s.resolver.Locales(),
	}
}

func (s *Server) getLocale(w http.ResponseWriter, r *http.Request) {
	resp := s.localeState()
	resp.Request = middlewares.GetLocale(r.Context())
	writeJSON(w, http.StatusOK, resp)
}

// setLocale switches the process-wide active locale.
func (s *Server) setLocale(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Locale string `json:"locale"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.resolver.SetLocale(body.Locale); err != nil {
		s.failWith(w, r, http.StatusBadRequest, keyUnknownLocale, i18n.M{"locale": body.Locale})
		return
	}

	resp := s.localeState()
	resp.Message = s.resolver.Resolve("locale.changed", i18n.M{"locale": resp.Locale})
	s.log.InfoContext(r.Context(), "active locale changed", "active_locale", resp.Locale)
	writeJSON(w, http.StatusOK, resp)
}

type resolveResponse struct {
	Key    string `json:"key"`
	Locale string `json:"locale"`
	Value  string `json:"value"`
}

// resolveKey resolves ?key= in ?locale= (default: the request locale).
// ?n= selects a plural form; every other query parameter is passed as a
// template param.
func (s *Server) resolveKey(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := q.Get("key")
	if key == "" {
		s.failWith(w, r, http.StatusBadRequest, keyMissingKey, nil)
		return
	}

	tr := s.translator(r)
	if locale := q.Get("locale"); locale != "" {
		tr = s.resolver.Translator(locale)
	}

	params := i18n.M{}
	for name, values := range q {
		switch name {
		case "key", "locale", "n", middlewares.DefaultLocaleParam:
			continue
		}
		params[name] = values[0]
	}

	resp := resolveResponse{Key: key, Locale: tr.Locale()}
	if n, err := strconv.Atoi(q.Get("n")); err == nil {
		resp.Value = tr.Tn(key, n, params)
	} else {
		resp.Value = tr.T(key, params)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) coverage(w http.ResponseWriter, _ *http.Request) {
	reports := i18n.Coverage(s.resolver)
	if reports == nil {
		reports = []i18n.CoverageReport{}
	}
	writeJSON(w, http.StatusOK, reports)
}

// switchLanguage stores the locale in the lang cookie and redirects home.
// Unknown locales leave the cookie untouched.
func (s *Server) switchLanguage(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	if s.resolver.HasLocale(locale) {
		http.SetCookie(w, &http.Cookie{
			Name:     middlewares.DefaultLocaleParam,
			Value:    i18n.NormalizeLocale(locale),
			Path:     "/",
			MaxAge:   int(localeCookieMaxAge.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
