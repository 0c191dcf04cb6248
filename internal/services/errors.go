package services

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart              = errors.New("cart is empty, nothing to checkout")
	ErrOutOfStock             = errors.New("artwork is no longer available")
	ErrStaleCart              = errors.New("cart item became unavailable since it was added")
	ErrInvalidSelection       = errors.New("print purchases require a print size")
	ErrInvalidTransition      = errors.New("illegal order status transition")
	ErrPaymentDeclined        = errors.New("payment was declined")
	ErrGatewayUnavailable     = errors.New("payment gateway unavailable")
	ErrUnsupportedDestination = errors.New("destination is not supported")
	ErrOrderNotFound          = errors.New("order not found")
	ErrBadCreds               = errors.New("invalid email or password")
)

// ValidationError reports malformed input. Always recoverable by the caller
// and never logged as a system fault.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error { return &ValidationError{Field: field, Reason: reason} }
