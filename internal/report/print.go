package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cleared-dev/runway/internal/model"
)

// Print writes one row per entry with a column per account and a final total
// column. accounts selects and orders the columns; nil means every account.
func Print(w io.Writer, h model.History, accounts []string, symbol string) error {
	if accounts == nil {
		accounts = h.Accounts()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := append([]string{"date"}, accounts...)
	header = append(header, "total")
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")+"\t"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range h {
		row := make([]string, 0, len(accounts)+2)
		row = append(row, e.Date.Format(dateFormat))
		for _, name := range accounts {
			v, ok := e.Balances[name]
			if !ok {
				return fmt.Errorf("unknown account %q", name)
			}
			row = append(row, FormatAmount(v, symbol))
		}
		row = append(row, FormatAmount(e.Balances.Total(), symbol))
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")+"\t"); err != nil {
			return fmt.Errorf("writing %s: %w", e.Date.Format(dateFormat), err)
		}
	}
	return tw.Flush()
}
