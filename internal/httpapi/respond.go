package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/polyglot/internal/orders"
	"github.com/dmitrymomot/polyglot/middlewares"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

var errDecode = errors.New("httpapi: malformed request body")

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// messageResponse carries a localized message and an optional payload.
type messageResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Order   any    `json:"order,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(errDecode, err)
	}
	return nil
}

// translator returns the request translator, or one bound to the active
// locale when the I18n middleware did not run.
func (s *Server) translator(r *http.Request) *i18n.Translator {
	if tr := middlewares.GetTranslator(r.Context()); tr != nil {
		return tr
	}
	return s.resolver.Translator("")
}

// fail writes a localized error for err.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.failOr(w, r, err, orders.KeyInternal)
}

// failOr is fail with internalKey describing errors that have no key of
// their own.
func (s *Server) failOr(w http.ResponseWriter, r *http.Request, err error, internalKey string) {
	status := statusFor(err)
	key, params := orders.MessageKey(err)
	switch {
	case errors.Is(err, errDecode):
		key, params = orders.KeyInvalidInput, nil
	case errors.Is(err, errInvalidID):
		key, params = keyInvalidID, nil
	case key == orders.KeyInternal:
		key = internalKey
	}
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", slog.Any("error", err))
	}
	s.failWith(w, r, status, key, params)
}

func (s *Server) failWith(w http.ResponseWriter, r *http.Request, status int, key string, params i18n.M) {
	writeJSON(w, status, errorResponse{
		Error: s.translator(r).T(key, params),
		Code:  key,
	})
}

// panicResponse answers recovered panics with the localized JSON error.
func (s *Server) panicResponse(w http.ResponseWriter, r *http.Request, _ *middlewares.PanicError) {
	s.failWith(w, r, http.StatusInternalServerError, orders.KeyInternal, nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errDecode), errors.Is(err, errInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, orders.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orders.ErrAlreadyPaid), errors.Is(err, orders.ErrCancelled):
		return http.StatusConflict
	case errors.Is(err, orders.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	}
	return http.StatusInternalServerError
}
