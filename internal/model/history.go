package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting is one movement of money produced by a generator firing.
type Posting struct {
	Date   time.Time
	Kind   Kind
	From   string
	To     string
	Amount decimal.Decimal
}

// Entry is the state of every account at the end of one simulated day.
type Entry struct {
	Date     time.Time
	Balances Balances
	Postings []Posting
}

// History is the chronological output of one simulation run.
type History []Entry

// Last returns the final entry, or false for an empty history.
func (h History) Last() (Entry, bool) {
	if len(h) == 0 {
		return Entry{}, false
	}
	return h[len(h)-1], true
}

// Accounts returns the sorted account names of the first entry. Every entry of
// a run carries the same accounts.
func (h History) Accounts() []string {
	if len(h) == 0 {
		return nil
	}
	return h[0].Balances.Names()
}
