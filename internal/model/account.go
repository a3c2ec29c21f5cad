package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Well-known account names. The zero-origin accounts are created at zero when
// the configuration omits them so every generator has somewhere to post.
const (
	AccountSalaryIncome       = "salary_income"
	AccountMortgageIncome     = "mortgage_income"
	AccountCharityExpenditure = "charity_expenditure"
	AccountOpeningBalances    = "opening_balances"
)

// ZeroOriginAccounts lists the accounts that always exist, starting at zero.
var ZeroOriginAccounts = []string{
	AccountSalaryIncome,
	AccountMortgageIncome,
	AccountCharityExpenditure,
}

// Balances maps account name to signed balance. Treat it as a value: callers
// Clone before changing it so earlier snapshots stay untouched.
type Balances map[string]decimal.Decimal

// Clone returns an independent copy.
func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for name, v := range b {
		out[name] = v
	}
	return out
}

// Has reports whether the account exists.
func (b Balances) Has(name string) bool {
	_, ok := b[name]
	return ok
}

// Total returns the sum of every balance.
func (b Balances) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// Names returns the account names in lexical order.
func (b Balances) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
