package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveSubscription means no active student subscription covers the
	// requested period; billing cannot proceed.
	ErrNoActiveSubscription = errors.New("no active subscription for period")

	// ErrConcurrencyConflict means a concurrent activation won the race; the
	// caller must re-query the current state before retrying.
	ErrConcurrencyConflict = errors.New("concurrent subscription activation")

	// ErrNotFound is returned for lookups of rows that do not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports malformed input: a bad time slot, an inverted date
// range, a missing required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
