package model

import "github.com/shopspring/decimal"

// Kind names a generator variant.
type Kind string

const (
	KindMortgage Kind = "mortgage"
	KindInterest Kind = "interest"
	KindSalary   Kind = "salary"
	KindTransfer Kind = "transfer"
	KindTithe    Kind = "tithe"
)

// Kinds lists every generator variant in documentation order.
var Kinds = []Kind{KindMortgage, KindInterest, KindSalary, KindTransfer, KindTithe}

// Generator is a recurring monthly rule. The set of implementations is closed:
// Mortgage, Interest, Salary, Transfer and Tithe.
type Generator interface {
	Kind() Kind
	// TriggerDay is the day of month the generator fires on.
	TriggerDay() int
	// Accounts lists every account the generator reads or writes.
	Accounts() []string

	generator()
}

// Mortgage pays down a liability by up to Amount each month.
type Mortgage struct {
	Amount decimal.Decimal
	Day    int
	From   string
	To     string
}

// Interest accrues Rate percent a year on Account, paid by IncomeAccount.
type Interest struct {
	Rate          decimal.Decimal
	Day           int
	Account       string
	IncomeAccount string
}

// Salary deposits Amount into To from the salary_income account.
type Salary struct {
	Amount decimal.Decimal
	Day    int
	To     string
}

// Transfer moves Amount between two accounts unconditionally.
type Transfer struct {
	Amount decimal.Decimal
	Day    int
	From   string
	To     string
}

// Tithe gives away Percentage of the salary received since the last tithe.
type Tithe struct {
	Percentage decimal.Decimal
	Day        int
	From       string
	To         string
}

func (Mortgage) Kind() Kind { return KindMortgage }
func (Interest) Kind() Kind { return KindInterest }
func (Salary) Kind() Kind   { return KindSalary }
func (Transfer) Kind() Kind { return KindTransfer }
func (Tithe) Kind() Kind    { return KindTithe }

func (g Mortgage) TriggerDay() int { return g.Day }
func (g Interest) TriggerDay() int { return g.Day }
func (g Salary) TriggerDay() int   { return g.Day }
func (g Transfer) TriggerDay() int { return g.Day }
func (g Tithe) TriggerDay() int    { return g.Day }

func (g Mortgage) Accounts() []string { return []string{g.From, g.To} }
func (g Interest) Accounts() []string { return []string{g.Account, g.IncomeAccount} }
func (g Salary) Accounts() []string   { return []string{AccountSalaryIncome, g.To} }
func (g Transfer) Accounts() []string { return []string{g.From, g.To} }
func (g Tithe) Accounts() []string    { return []string{g.From, g.To} }

func (Mortgage) generator() {}
func (Interest) generator() {}
func (Salary) generator()   {}
func (Transfer) generator() {}
func (Tithe) generator()    {}
