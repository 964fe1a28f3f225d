package httpapi

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/polyglot/internal/orders"
	"github.com/dmitrymomot/polyglot/pkg/i18n"
	"github.com/dmitrymomot/polyglot/pkg/sanitizer"
)

const (
	keyInvalidID   = "error.invalid_id"
	keyCreateError = "order.error"
)

var errInvalidID = errors.New("httpapi: invalid order id")

// orderView is an order with its display strings in the request locale.
type orderView struct {
	orders.Order
	Amount      float64 `json:"amount"`
	StatusLabel string  `json:"status_label"`
	Display     struct {
		Amount    string `json:"amount"`
		UnitPrice string `json:"unit_price"`
		Quantity  string `json:"quantity"`
		CreatedAt string `json:"created_at"`
		Placed    string `json:"placed"`
	} `json:"display"`
}

// NotesHTML renders the notes for the order page, sanitized again on output.
func (v orderView) NotesHTML() template.HTML {
	return template.HTML(sanitizer.SanitizeHTML(v.Notes)) //nolint:gosec // sanitized by bluemonday
}

func newOrderView(tr *i18n.Translator, o orders.Order) orderView {
	v := orderView{
		Order:       o,
		Amount:      o.Amount(),
		StatusLabel: tr.T(o.Status.MessageKey()),
	}
	v.Display.Amount = tr.Format(i18n.HintCurrency, o.Amount())
	v.Display.UnitPrice = tr.Format(i18n.HintCurrency, o.UnitPrice)
	v.Display.Quantity = tr.Tn("order.items", o.Quantity)
	v.Display.CreatedAt = tr.Format(i18n.HintDate, o.CreatedAt)
	v.Display.Placed = tr.T("order.placed", i18n.M{"when": o.CreatedAt})
	return v
}

type listResponse struct {
	Orders  []orderView `json:"orders"`
	Summary struct {
		orders.Summary
		Total   string `json:"total"`
		Revenue string `json:"revenue_display"`
	} `json:"summary"`
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)

	list, err := s.orders.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sum, err := s.orders.Summary(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := listResponse{Orders: make([]orderView, 0, len(list))}
	for _, o := range list {
		resp.Orders = append(resp.Orders, newOrderView(tr, o))
	}
	resp.Summary.Summary = sum
	resp.Summary.Total = tr.T("order.total", i18n.M{"count": sum.Count})
	resp.Summary.Revenue = tr.T("order.revenue", i18n.M{"revenue": sum.Revenue})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var in orders.Input
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	o, err := s.orders.Create(r.Context(), in)
	if err != nil {
		s.failOr(w, r, err, keyCreateError)
		return
	}

	tr := s.translator(r)
	writeJSON(w, http.StatusCreated, messageResponse{
		Message: tr.T("order.success"),
		Detail:  tr.T("order.processing", i18n.M{"customer": o.Customer, "count": o.Quantity}),
		Order:   newOrderView(tr, o),
	})
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	o, err := s.orders.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(s.translator(r), o))
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var in orders.Input
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	o, err := s.orders.Update(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	tr := s.translator(r)
	writeJSON(w, http.StatusOK, messageResponse{
		Message: tr.T("order.updated"),
		Order:   newOrderView(tr, o),
	})
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.orders.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: s.translator(r).T("order.deleted")})
}

// payOrder answers 402 with the failed order when the charge is declined.
func (s *Server) payOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	tr := s.translator(r)
	o, err := s.orders.Pay(r.Context(), id)
	switch {
	case errors.Is(err, orders.ErrPaymentDeclined):
		writeJSON(w, http.StatusPaymentRequired, struct {
			errorResponse
			Order orderView `json:"order"`
		}{
			errorResponse: errorResponse{Error: tr.T(orders.KeyPaymentDeclined), Code: orders.KeyPaymentDeclined},
			Order:         newOrderView(tr, o),
		})
	case err != nil:
		s.fail(w, r, err)
	default:
		writeJSON(w, http.StatusOK, messageResponse{
			Message: tr.T("payment.success", i18n.M{"amount": o.Amount(), "customer": o.Customer}),
			Order:   newOrderView(tr, o),
		})
	}
}

func orderID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}
