package middlewares_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/polyglot/middlewares"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/logger"
)

func newResolver(t *testing.T) *i18n.Resolver {
	t.Helper()
	r, err := i18n.New(
		i18n.WithTranslations("en", map[string]any{
			"greeting": "Hello",
			"error":    map[string]any{"internal": "Something went wrong"},
		}),
		i18n.WithTranslations("fr", map[string]any{
			"greeting": "Bonjour",
			"error":    map[string]any{"internal": "Une erreur est survenue"},
		}),
		i18n.WithTranslations("de", map[string]any{"greeting": "Hallo"}),
		i18n.WithPseudoLocale("pseudo", "", ""),
	)
	require.NoError(t, err)
	return r
}

func greet(w http.ResponseWriter, r *http.Request) {
	tr := middlewares.GetTranslator(r.Context())
	_, _ = w.Write([]byte(tr.T("greeting")))
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(middlewares.GetRequestID(r.Context())))
	})

	t.Run("generates id", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		middlewares.RequestID()(echo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get("X-Request-ID")
		require.Len(t, id, 36)
		require.Equal(t, id, rec.Body.String())
	})

	t.Run("inherits upstream id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "upstream-1")
		rec := httptest.NewRecorder()
		middlewares.RequestID()(echo).ServeHTTP(rec, req)

		require.Equal(t, "upstream-1", rec.Body.String())
		require.Equal(t, "upstream-1", rec.Header().Get("X-Request-ID"))
	})

	t.Run("oversized id is replaced", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", 200))
		rec := httptest.NewRecorder()
		middlewares.RequestID(middlewares.WithRequestIDGenerator(func() string { return "fresh" }))(echo).ServeHTTP(rec, req)

		require.Equal(t, "fresh", rec.Body.String())
	})

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, middlewares.GetRequestID(t.Context()))
	})
}

func TestI18n(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	handler := middlewares.I18n(r)(http.HandlerFunc(greet))

	tests := []struct {
		name     string
		target   string
		cookie   string
		accept   string
		expected string
		locale   string
	}{
		{name: "active locale by default", target: "/", expected: "Hello", locale: "en"},
		{name: "query wins", target: "/?lang=fr", cookie: "de", accept: "de", expected: "Bonjour", locale: "fr"},
		{name: "cookie before header", target: "/", cookie: "de", accept: "fr", expected: "Hallo", locale: "de"},
		{name: "accept language", target: "/", accept: "fr-CA,fr;q=0.9", expected: "Bonjour", locale: "fr"},
		{name: "unknown query is skipped", target: "/?lang=xx", cookie: "fr", expected: "Bonjour", locale: "fr"},
		{name: "regional query keeps region", target: "/?lang=de_AT", expected: "Hallo", locale: "de-AT"},
		{name: "pseudo locale", target: "/?lang=pseudo", expected: "[[greeting]]", locale: "pseudo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Body.String())
			assert.Equal(t, tt.locale, rec.Header().Get("Content-Language"))
		})
	}

	t.Run("unmatched accept language falls through to active locale", func(t *testing.T) {
		t.Parallel()
		r := newResolver(t)
		require.NoError(t, r.SetLocale("fr"))
		h := middlewares.I18n(r)(http.HandlerFunc(greet))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "ja,zh;q=0.8")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "Bonjour", rec.Body.String())
		require.Equal(t, "fr", rec.Header().Get("Content-Language"))
	})

	t.Run("custom extractor", func(t *testing.T) {
		t.Parallel()
		h := middlewares.I18n(r, middlewares.WithI18nExtractor(
			middlewares.NewExtractor(middlewares.FromHeader("X-Locale")),
		))(http.HandlerFunc(greet))

		req := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)
		req.Header.Set("X-Locale", "fr")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, "Bonjour", rec.Body.String())
	})

	t.Run("no middleware", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, middlewares.GetTranslator(t.Context()))
		require.Empty(t, middlewares.GetLocale(t.Context()))
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	t.Run("localized 500 and log entry", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{Format: logger.FormatJSON}, middlewares.LocaleExtractor())

		h := middlewares.I18n(r)(middlewares.Recover(log)(boom))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=fr", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "Une erreur est survenue", rec.Body.String())
		require.Contains(t, buf.String(), `"msg":"panic recovered"`)
		require.Contains(t, buf.String(), `"locale":"fr"`)
		require.Contains(t, buf.String(), `"stack"`)
	})

	t.Run("without translator", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		middlewares.Recover(logger.NewNope(), middlewares.WithRecoverDisablePrintStack())(boom).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "Internal Server Error", rec.Body.String())
	})

	t.Run("custom handler", func(t *testing.T) {
		t.Parallel()
		var got *middlewares.PanicError
		h := middlewares.Recover(logger.NewNope(), middlewares.WithRecoverHandler(
			func(w http.ResponseWriter, _ *http.Request, pe *middlewares.PanicError) {
				got = pe
				w.WriteHeader(http.StatusTeapot)
			},
		))(boom)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusTeapot, rec.Code)
		require.NotNil(t, got)
		require.Equal(t, "panic: boom", got.Error())
		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.NotEmpty(t, pe.Stack)
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		t.Parallel()
		h := middlewares.Recover(logger.NewNope())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))
		require.PanicsWithValue(t, http.ErrAbortHandler, func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("logs status and request id", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{Format: logger.FormatJSON}, middlewares.RequestIDExtractor())

		h := middlewares.RequestID()(middlewares.RequestLogger(log)(http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte("ok"))
			},
		)))
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.Header.Set("X-Request-ID", "req-42")
		h.ServeHTTP(httptest.NewRecorder(), req)

		out := buf.String()
		require.Contains(t, out, `"msg":"request completed"`)
		require.Contains(t, out, `"status":201`)
		require.Contains(t, out, `"size":2`)
		require.Contains(t, out, `"path":"/api/orders"`)
		require.Contains(t, out, `"request_id":"req-42"`)
		require.Contains(t, out, `"level":"INFO"`)
	})

	t.Run("panic after write keeps sent status", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithWriter(&buf, logger.Config{Format: logger.FormatJSON})

		h := middlewares.RequestLogger(log)(middlewares.Recover(logger.NewNope())(http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("partial"))
				panic("late")
			},
		)))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "partial", rec.Body.String())
		require.Contains(t, buf.String(), `"status":200`)
	})
}
