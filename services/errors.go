package services

import (
	"fmt"

	"github.com/pkg/errors"
)

// Domain outcomes the calling surface must tell apart: a pharmacist sees
// "insufficient stock", a patient "insufficient funds", an admin an I/O
// failure. All are matchable with errors.Is / errors.As.
var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrMedicineNotFound    = errors.New("medicine not found")
	ErrEmptyPrescription   = errors.New("prescription requires at least one line item")
	ErrExpiredPrescription = errors.New("prescription has expired")
	ErrLockedOut           = errors.New("too many failed login attempts")
	ErrInvalidCredentials  = errors.New("invalid username or password")
)

// InvalidTransitionError rejects a workflow operation attempted from a
// state that does not permit it. The operation leaves all state unchanged.
type InvalidTransitionError struct {
	Entity    string
	ID        int
	From      string
	Operation string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s %d: cannot %s from status %s", e.Entity, e.ID, e.Operation, e.From)
}
