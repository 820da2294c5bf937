package core

import "errors"

// Error taxonomy. Callers match with errors.Is; lower layers wrap these
// with fmt.Errorf("%w: ...") to add detail.
var (
	// ErrNotFound is returned by get/update/delete on an absent record id.
	ErrNotFound = errors.New("record not found")

	// ErrRateFetch is returned when the exchange rate endpoint is
	// unreachable or returns a non-JSON body.
	ErrRateFetch = errors.New("exchange rate fetch failed")

	// ErrMissingRate is returned when a currency is absent from the
	// fetched rate map.
	ErrMissingRate = errors.New("missing exchange rate")

	// ErrValidation is the root of all caller-input errors below.
	ErrValidation = errors.New("validation failed")
)

var (
	ErrInvalidSum         = validation("sum must be positive")
	ErrInvalidCurrency    = validation("unknown currency")
	ErrInvalidCostType    = validation("unknown cost type")
	ErrInvalidBudgetType  = validation("unknown budget type")
	ErrInvalidBudgetScope = validation("budget scope does not match its type")
	ErrInvalidYear        = validation("invalid year")
	ErrInvalidMonth       = validation("invalid month")
	ErrInvalidDay         = validation("invalid day")
	ErrEmptyCategory      = validation("empty category")
	ErrEmptyName          = validation("empty name")
)

type validationError struct{ msg string }

func validation(msg string) error { return &validationError{msg: msg} }

func (e *validationError) Error() string { return e.msg }

// Unwrap makes every field-level sentinel match ErrValidation.
func (e *validationError) Unwrap() error { return ErrValidation }
