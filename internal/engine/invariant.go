package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/runway/internal/model"
)

const dateFormat = "2006-01-02"

// InvariantError reports a day whose balances do not sum to zero. It carries
// the offending balance sheet so callers can print every account.
type InvariantError struct {
	Date     time.Time
	Total    decimal.Decimal
	Balances model.Balances
}

func (e *InvariantError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s on %s: total %s", ErrInvariantViolation, e.Date.Format(dateFormat), e.Total.StringFixed(2))
	writeBalances(&b, e.Balances)
	return b.String()
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

// LiabilityError reports a mortgage target found holding a positive balance,
// with the balance sheet of the day it was found.
type LiabilityError struct {
	Date     time.Time
	Account  string
	Balances model.Balances
}

func (e *LiabilityError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s on %s: %s is %s", ErrPositiveLiability, e.Date.Format(dateFormat), e.Account,
		e.Balances[e.Account].StringFixed(2))
	writeBalances(&b, e.Balances)
	return b.String()
}

func (e *LiabilityError) Unwrap() error { return ErrPositiveLiability }

// BalanceSheet returns the balances a fatal error was raised against, if it
// carries them.
func BalanceSheet(err error) (time.Time, model.Balances, bool) {
	var ie *InvariantError
	if errors.As(err, &ie) {
		return ie.Date, ie.Balances, true
	}
	var le *LiabilityError
	if errors.As(err, &le) {
		return le.Date, le.Balances, true
	}
	return time.Time{}, nil, false
}

func writeBalances(b *strings.Builder, balances model.Balances) {
	for _, name := range balances.Names() {
		fmt.Fprintf(b, "\n  %s: %s", name, balances[name].StringFixed(2))
	}
}

// CheckZeroSum returns an *InvariantError when balances do not total exactly zero.
func CheckZeroSum(date time.Time, balances model.Balances) error {
	total := balances.Total()
	if total.IsZero() {
		return nil
	}
	return &InvariantError{Date: date, Total: total, Balances: balances.Clone()}
}

// CheckAccounts verifies that every account a generator touches exists.
// All missing references are reported together.
func CheckAccounts(gens []model.Generator, balances model.Balances) error {
	var missing []string
	for i, g := range gens {
		for _, name := range g.Accounts() {
			if !balances.Has(name) {
				missing = append(missing, fmt.Sprintf("generator %d (%s): %q", i+1, g.Kind(), name))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, strings.Join(missing, "; "))
	}
	return nil
}
