// Package orders holds the order desk domain: orders, their lifecycle, the
// repositories that persist them and the service the HTTP layer calls.
//
// Every error the package returns maps to a translation key through
// MessageKey, so callers never show a hardcoded English message.
package orders

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/polyglot/pkg/sanitizer"
)

// Status is an order lifecycle state.
type Status string

const (
	StatusNew           Status = "NEW"
	StatusPaid          Status = "PAID"
	StatusPaymentFailed Status = "PAYMENT_FAILED"
	StatusCancelled     Status = "CANCELLED"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNew, StatusPaid, StatusPaymentFailed, StatusCancelled}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPaid, StatusPaymentFailed, StatusCancelled:
		return true
	}
	return false
}

// MessageKey returns the translation key of the status label,
// e.g. "order.status.payment_failed".
func (s Status) MessageKey() string {
	return "order.status." + strings.ToLower(string(s))
}

// Limits on order input.
const (
	MaxCustomerLength = 120
	MaxNotesLength    = 2000
	MaxQuantity       = 10000
)

// Order is a customer order.
type Order struct {
	ID        int64     `json:"id"`
	Customer  string    `json:"customer"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Notes     string    `json:"notes,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Amount is the order total.
func (o Order) Amount() float64 {
	return float64(o.Quantity) * o.UnitPrice
}

// Input carries the client-editable fields of an order.
type Input struct {
	Customer  string  `json:"customer"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Notes     string  `json:"notes"`
	Status    Status  `json:"status,omitempty"`
}

// Sanitize strips markup from the customer name and reduces notes to the
// safe HTML subset.
func (in Input) Sanitize() Input {
	in.Customer = sanitizer.StripTags(in.Customer)
	in.Notes = strings.TrimSpace(sanitizer.SanitizeHTML(in.Notes))
	in.Status = Status(strings.ToUpper(strings.TrimSpace(string(in.Status))))
	return in
}

// Validate checks the input. An empty status is allowed and means "keep" on
// update and NEW on create.
func (in Input) Validate() error {
	switch {
	case in.Customer == "":
		return &ValidationError{Field: "customer", Key: "validation.customer_required"}
	case utf8.RuneCountInString(in.Customer) > MaxCustomerLength:
		return &ValidationError{Field: "customer", Key: "validation.customer_too_long", Limit: MaxCustomerLength}
	case in.Quantity < 1 || in.Quantity > MaxQuantity:
		return &ValidationError{Field: "quantity", Key: "validation.quantity_range", Limit: MaxQuantity}
	case in.UnitPrice < 0:
		return &ValidationError{Field: "unit_price", Key: "validation.price_negative"}
	case utf8.RuneCountInString(in.Notes) > MaxNotesLength:
		return &ValidationError{Field: "notes", Key: "validation.notes_too_long", Limit: MaxNotesLength}
	case in.Status != "" && !in.Status.Valid():
		return &ValidationError{Field: "status", Key: "validation.status_invalid"}
	}
	return nil
}

// Summary aggregates the order book.
type Summary struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
	Paid    int     `json:"paid"`
}
