package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/runway/internal/id"
	"github.com/cleared-dev/runway/internal/model"
)

const dateFormat = "2006-01-02"

// PostingsHeader is the CSV header written by WritePostingsCSV.
var PostingsHeader = []string{"posting_id", "date", "kind", "from", "to", "amount"}

// Point is one day of a single account's balance.
type Point struct {
	Date    time.Time
	Balance decimal.Decimal
}

// Series extracts one account's balance for every entry of h.
func Series(h model.History, account string) ([]Point, error) {
	points := make([]Point, 0, len(h))
	for _, e := range h {
		v, ok := e.Balances[account]
		if !ok {
			return nil, fmt.Errorf("unknown account %q", account)
		}
		points = append(points, Point{Date: e.Date, Balance: v})
	}
	return points, nil
}

// WriteSeriesCSV writes a date,balance CSV (including header).
func WriteSeriesCSV(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"date", "balance"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, p := range points {
		if err := cw.Write([]string{p.Date.Format(dateFormat), p.Balance.StringFixed(2)}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistoryCSV writes one row per entry and one column per account.
// accounts selects and orders the columns; nil means every account.
func WriteHistoryCSV(w io.Writer, h model.History, accounts []string) error {
	if accounts == nil {
		accounts = h.Accounts()
	}
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(append([]string{"date"}, accounts...)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, e := range h {
		row := make([]string, 0, len(accounts)+1)
		row = append(row, e.Date.Format(dateFormat))
		for _, name := range accounts {
			v, ok := e.Balances[name]
			if !ok {
				return fmt.Errorf("unknown account %q", name)
			}
			row = append(row, v.StringFixed(2))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePostingsCSV writes every posting of h in order (including header).
func WritePostingsCSV(w io.Writer, h model.History) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(PostingsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range h {
		for i, p := range e.Postings {
			if err := cw.Write(MarshalPosting(p, i+1)); err != nil {
				return fmt.Errorf("writing posting %s: %w", id.FormatPostingID(e.Date, i+1), err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalPosting converts the seq-th posting of its day to a CSV row.
func MarshalPosting(p model.Posting, seq int) []string {
	return []string{
		id.FormatPostingID(p.Date, seq),
		p.Date.Format(dateFormat),
		string(p.Kind),
		p.From,
		p.To,
		p.Amount.StringFixed(2),
	}
}
