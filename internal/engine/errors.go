package engine

import "errors"

var (
	// ErrUnknownAccount is returned when a generator names an account that is
	// not in the balance sheet.
	ErrUnknownAccount = errors.New("unknown account")
	// ErrPositiveLiability is returned when a mortgage target holds a positive
	// balance. A mortgage account must carry an outstanding (non-positive) debt.
	ErrPositiveLiability = errors.New("mortgage account has a positive balance")
	// ErrInvariantViolation is returned when balances stop summing to zero.
	ErrInvariantViolation = errors.New("balances do not sum to zero")
	// ErrInvalidHorizon is returned for a negative number of days.
	ErrInvalidHorizon = errors.New("number of days must not be negative")
)
