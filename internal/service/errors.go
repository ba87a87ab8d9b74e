package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCartItemNotFound     = errors.New("item is not in the cart")
	ErrInvalidOrderType     = errors.New("order type must be PRE_ORDER, TAKEAWAY or DELIVERY")
	ErrOrderTypeRequired    = errors.New("order type is required")
	ErrStatusUnchanged      = errors.New("status is already set")
	ErrTransitionNotAllowed = errors.New("status transition is not allowed")
	ErrUpdateInFlight       = errors.New("a status update for this record is already in progress")
	ErrSlotUnavailable      = errors.New("time slot is not available")
	ErrNoTimeSelected       = errors.New("select a date, party size and time first")
	ErrCannotCancel         = errors.New("reservation can no longer be cancelled")
	ErrNotSignedIn          = errors.New("sign in required")
)

// ValidationError carries per-field messages for input rejected before any backend call.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
