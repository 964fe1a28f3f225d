package orders

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("orders: order not found")
	ErrInvalidInput    = errors.New("orders: invalid input")
	ErrAlreadyPaid     = errors.New("orders: order already paid")
	ErrCancelled       = errors.New("orders: order cancelled")
	ErrPaymentDeclined = errors.New("orders: payment declined")
)

// Translation keys for errors without a more specific key.
const (
	KeyNotFound        = "error.not_found"
	KeyAlreadyPaid     = "error.already_paid"
	KeyCancelled       = "error.cancelled"
	KeyPaymentDeclined = "error.payment"
	KeyInvalidInput    = "error.invalid_input"
	KeyInternal        = "error.internal"
)

// ValidationError reports an invalid field. It unwraps to ErrInvalidInput.
type ValidationError struct {
	Field string
	Key   string // translation key of the message
	Limit int    // exposed to the message as {{limit}} when non-zero
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("orders: invalid %s (%s)", e.Field, e.Key)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// MessageKey returns the translation key describing err, and the params the
// message expects.
func MessageKey(err error) (string, map[string]any) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		params := map[string]any{"field": ve.Field}
		if ve.Limit != 0 {
			params["limit"] = ve.Limit
		}
		return ve.Key, params
	case errors.Is(err, ErrNotFound):
		return KeyNotFound, nil
	case errors.Is(err, ErrAlreadyPaid):
		return KeyAlreadyPaid, nil
	case errors.Is(err, ErrCancelled):
		return KeyCancelled, nil
	case errors.Is(err, ErrPaymentDeclined):
		return KeyPaymentDeclined, nil
	case errors.Is(err, ErrInvalidInput):
		return KeyInvalidInput, nil
	}
	return KeyInternal, nil
}
