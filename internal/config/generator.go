package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/runway/internal/model"
)

// ErrUnknownType is returned for a generator type outside the supported set.
var ErrUnknownType = errors.New("unknown generator type")

// Generator validates the entry and converts it to its model variant.
func (g GeneratorConfig) Generator() (model.Generator, error) {
	kind := model.Kind(strings.ToLower(strings.TrimSpace(g.Type)))

	var errs []error
	if g.Day < 1 || g.Day > 31 {
		errs = append(errs, fmt.Errorf("day %d out of range 1..31", g.Day))
	}
	require := func(field, value string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s is required", field))
		}
	}
	positive := func(field string, v decimal.Decimal) {
		if !v.IsPositive() {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", field, v))
		}
	}

	var gen model.Generator
	switch kind {
	case model.KindMortgage:
		positive("amount", g.Amount)
		require("from", g.From)
		require("to", g.To)
		gen = model.Mortgage{Amount: g.Amount, Day: g.Day, From: g.From, To: g.To}
	case model.KindInterest:
		require("account", g.Account)
		require("income_account", g.IncomeAccount)
		gen = model.Interest{Rate: g.Rate, Day: g.Day, Account: g.Account, IncomeAccount: g.IncomeAccount}
	case model.KindSalary:
		positive("amount", g.Amount)
		require("to", g.To)
		gen = model.Salary{Amount: g.Amount, Day: g.Day, To: g.To}
	case model.KindTransfer:
		positive("amount", g.Amount)
		require("from", g.From)
		require("to", g.To)
		gen = model.Transfer{Amount: g.Amount, Day: g.Day, From: g.From, To: g.To}
	case model.KindTithe:
		if g.Percentage.IsNegative() {
			errs = append(errs, fmt.Errorf("percentage must not be negative, got %s", g.Percentage))
		}
		require("from", g.From)
		to := g.To
		if to == "" {
			to = model.AccountCharityExpenditure
		}
		gen = model.Tithe{Percentage: g.Percentage, Day: g.Day, From: g.From, To: to}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, g.Type)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", kind, errors.Join(errs...))
	}
	return gen, nil
}
