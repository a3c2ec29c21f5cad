package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/runway/internal/model"
)

var (
	hundred         = decimal.NewFromInt(100)
	monthsByPercent = decimal.NewFromInt(12 * 100)
)

// State is everything carried from one simulated day to the next.
type State struct {
	Balances model.Balances
	// Accumulator holds the salary received since the last tithe was paid.
	Accumulator decimal.Decimal
}

// Step advances state to date, which must already be the next calendar day.
// Generators whose trigger day matches date.Day() are applied in slice order;
// each sees the balances left by the ones before it. The input state is not
// modified. Any error is fatal for the run.
func Step(gens []model.Generator, st State, date time.Time) (State, []model.Posting, error) {
	next := State{Balances: st.Balances.Clone(), Accumulator: st.Accumulator}
	day := date.Day()

	var postings []model.Posting
	for i, g := range gens {
		if g.TriggerDay() != day {
			continue
		}
		for _, name := range g.Accounts() {
			if !next.Balances.Has(name) {
				return State{}, nil, fmt.Errorf("generator %d (%s): %w %q", i+1, g.Kind(), ErrUnknownAccount, name)
			}
		}

		p, err := apply(g, &next, date)
		if err != nil {
			return State{}, nil, fmt.Errorf("generator %d (%s) on %s: %w", i+1, g.Kind(), date.Format(dateFormat), err)
		}
		if p != nil {
			postings = append(postings, *p)
		}
	}

	if err := CheckZeroSum(date, next.Balances); err != nil {
		return State{}, nil, err
	}
	return next, postings, nil
}

// apply fires a single generator against st. It returns nil when the
// generator fired but moved nothing.
func apply(g model.Generator, st *State, date time.Time) (*model.Posting, error) {
	b := st.Balances
	switch g := g.(type) {
	case model.Mortgage:
		owed := b[g.To]
		if owed.IsPositive() {
			return nil, &LiabilityError{Date: date, Account: g.To, Balances: b.Clone()}
		}
		amount := decimal.Min(g.Amount, owed.Neg(), b[g.From])
		amount = decimal.Max(amount, decimal.Zero)
		return move(b, date, g.Kind(), g.From, g.To, amount), nil

	case model.Interest:
		if g.Rate.IsZero() {
			return nil, nil
		}
		interest := b[g.Account].Mul(g.Rate).Div(monthsByPercent).Round(2)
		return move(b, date, g.Kind(), g.IncomeAccount, g.Account, interest), nil

	case model.Salary:
		st.Accumulator = st.Accumulator.Add(g.Amount)
		return move(b, date, g.Kind(), model.AccountSalaryIncome, g.To, g.Amount), nil

	case model.Transfer:
		return move(b, date, g.Kind(), g.From, g.To, g.Amount), nil

	case model.Tithe:
		amount := st.Accumulator.Mul(g.Percentage).Div(hundred).Round(2)
		if !amount.IsPositive() {
			return nil, nil
		}
		st.Accumulator = decimal.Zero
		return move(b, date, g.Kind(), g.From, g.To, amount), nil

	default:
		return nil, fmt.Errorf("unsupported generator %T", g)
	}
}

// move debits from and credits to. A zero amount leaves balances alone and
// records nothing. Negative amounts are posted in the opposite direction so
// the recorded amount is always positive.
func move(b model.Balances, date time.Time, kind model.Kind, from, to string, amount decimal.Decimal) *model.Posting {
	if amount.IsZero() {
		return nil
	}
	if amount.IsNegative() {
		from, to, amount = to, from, amount.Neg()
	}
	b[from] = b[from].Sub(amount)
	b[to] = b[to].Add(amount)
	return &model.Posting{Date: date, Kind: kind, From: from, To: to, Amount: amount}
}
