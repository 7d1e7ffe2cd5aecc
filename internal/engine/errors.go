package engine

import (
	"errors"
	"fmt"
)

// Sentinel taxonomy. Typed errors below unwrap to these so callers can route
// on errors.Is without caring about the concrete type.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOverpayment       = errors.New("payment exceeds remaining debt")
	ErrNotFound          = errors.New("not found")
	ErrInvalidFormat     = errors.New("invalid backup format")

	// ErrProposalPending: a checkout/settlement proposal is already waiting for
	// confirmation. The caller must confirm or cancel it first.
	ErrProposalPending = errors.New("another proposal is pending confirmation")
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError names the product that cannot cover the requested
// unit-equivalent quantity.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: need %d units, have %d", e.ProductName, e.Requested, e.Available)
}
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// OverpaymentError is a validation failure: the payment exceeds the
// epsilon-bounded remaining debt.
type OverpaymentError struct {
	Remaining float64
	Payment   float64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment %.2f exceeds remaining debt %.2f", e.Payment, e.Remaining)
}
func (e *OverpaymentError) Unwrap() []error { return []error{ErrOverpayment, ErrValidation} }

type NotFoundError struct {
	Kind string // "product", "consignment", "customer", "transaction", "user"
	ID   string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %s not found", e.Kind, e.ID) }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

type InvalidFormatError struct {
	Msg string
}

func (e *InvalidFormatError) Error() string { return e.Msg }
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }
