package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized     = errors.New("ledger not initialized")
	ErrAlreadyInitialized = errors.New("ledger already initialized")
)

// UnknownProjectError reports a project id that has never been assigned.
type UnknownProjectError struct {
	ID uint64
}

func (e UnknownProjectError) Error() string {
	return fmt.Sprintf("project with id %d does not exist", e.ID)
}

// PaymentError reports inbound funds that fail host-level validation. It is
// raised at the request boundary, never by the ledger core.
type PaymentError struct {
	Reason string
}

func (e PaymentError) Error() string {
	return "payment error: " + e.Reason
}
