package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/runway/internal/model"
)

// Observer is notified after each simulated day. Observers must not modify
// the entry they are handed.
type Observer interface {
	DayCompleted(entry model.Entry)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(entry model.Entry)

// DayCompleted calls f.
func (f ObserverFunc) DayCompleted(entry model.Entry) { f(entry) }

// Option configures Simulate.
type Option func(*options)

type options struct {
	observers []Observer
}

// WithObserver registers an observer for every simulated day.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observers = append(opts.observers, o)
	}
}

// Simulate runs the generators for days calendar days, starting the day after
// start, and returns one entry per day. The opening balances must already be
// normalized. Neither opening nor gens is modified. The first error stops the
// run and no history is returned.
func Simulate(gens []model.Generator, opening model.Balances, start time.Time, days int, opts ...Option) (model.History, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHorizon, days)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckAccounts(gens, opening); err != nil {
		return nil, err
	}
	start = civilDate(start)
	if err := CheckZeroSum(start, opening); err != nil {
		return nil, err
	}

	st := State{Balances: opening.Clone(), Accumulator: decimal.Zero}
	history := make(model.History, 0, min(days, maxPrealloc))
	for i := 1; i <= days; i++ {
		date := start.AddDate(0, 0, i)
		next, postings, err := Step(gens, st, date)
		if err != nil {
			return nil, err
		}
		st = next

		entry := model.Entry{Date: date, Balances: st.Balances, Postings: postings}
		history = append(history, entry)
		for _, obs := range o.observers {
			obs.DayCompleted(entry)
		}
	}
	return history, nil
}

// maxPrealloc bounds the history capacity reserved up front; longer runs grow
// it as they go.
const maxPrealloc = 1 << 16

// civilDate drops the time of day so AddDate steps whole calendar days.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
