package engine

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/runway/internal/model"
)

// Normalize returns a copy of the opening balances with the zero-origin
// accounts added and an opening_balances account that brings the total to
// zero. The input map is not modified.
func Normalize(opening model.Balances) model.Balances {
	out := opening.Clone()
	for _, name := range model.ZeroOriginAccounts {
		if !out.Has(name) {
			out[name] = decimal.Zero
		}
	}
	// A configured opening_balances value is replaced, not added to.
	delete(out, model.AccountOpeningBalances)
	out[model.AccountOpeningBalances] = out.Total().Neg()
	return out
}
