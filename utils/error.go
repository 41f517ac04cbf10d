package utils

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrorRecordNotFound is returned when a referenced catalog entry,
// inventory item, customer or staff member does not exist.
var ErrorRecordNotFound = errors.New("record not found")

// InsufficientStockError is returned by the stock ledger when a deduction
// would drive an item's on-hand quantity negative. The message is surfaced
// verbatim to the end user, so it carries the item name and both quantities.
type InsufficientStockError struct {
	ItemName  string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %s, Required: %s",
		e.ItemName, e.Available.String(), e.Required.String())
}

// ValidationError marks rejected input: empty invoice lines, duplicate
// composition edges, non-positive quantities and the like.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError marks a uniqueness violation (item/product code,
// invoice number). Invoice numbers are derived from max(id) inside the
// commit transaction so this should not fire, but it is checked anyway.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
