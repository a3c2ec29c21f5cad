package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/runway/internal/model"
)

// DateFormat is the layout of start_date.
const DateFormat = "2006-01-02"

// DefaultFile is the config file name used when none is given.
const DefaultFile = "runway.yaml"

// Config represents a runway.yaml projection document.
type Config struct {
	Currency   string                     `yaml:"currency"`
	StartDate  string                     `yaml:"start_date"` // "YYYY-MM-DD"
	Accounts   map[string]decimal.Decimal `yaml:"accounts"`
	Generators []GeneratorConfig          `yaml:"generators"`
}

// GeneratorConfig is one entry of the generators list. Which fields apply
// depends on Type.
type GeneratorConfig struct {
	Type          string          `yaml:"type"`
	Day           int             `yaml:"day"`
	Amount        decimal.Decimal `yaml:"amount,omitempty"`
	Rate          decimal.Decimal `yaml:"rate,omitempty"`       // annual percent
	Percentage    decimal.Decimal `yaml:"percentage,omitempty"` // of salary since the last tithe
	From          string          `yaml:"from,omitempty"`
	To            string          `yaml:"to,omitempty"`
	Account       string          `yaml:"account,omitempty"`
	IncomeAccount string          `yaml:"income_account,omitempty"`
}

// Load reads and validates a runway.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a config document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config: empty document")
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a sample Config for a new project.
func Default() *Config {
	return &Config{
		Currency:  "£",
		StartDate: "2025-01-01",
		Accounts: map[string]decimal.Decimal{
			"main":     decimal.RequireFromString("10000.00"),
			"savings":  decimal.RequireFromString("5000.00"),
			"mortgage": decimal.RequireFromString("-250000.00"),
			"bank":     decimal.Zero,
		},
		Generators: []GeneratorConfig{
			{Type: string(model.KindSalary), Amount: decimal.RequireFromString("3000.00"), Day: 25, To: "main"},
			{Type: string(model.KindInterest), Rate: decimal.RequireFromString("4.5"), Day: 1, Account: "mortgage", IncomeAccount: model.AccountMortgageIncome},
			{Type: string(model.KindMortgage), Amount: decimal.RequireFromString("1350.00"), Day: 1, From: "main", To: "mortgage"},
			{Type: string(model.KindInterest), Rate: decimal.RequireFromString("3.2"), Day: 28, Account: "savings", IncomeAccount: "bank"},
			{Type: string(model.KindTransfer), Amount: decimal.RequireFromString("250.00"), Day: 26, From: "main", To: "savings"},
			{Type: string(model.KindTithe), Percentage: decimal.RequireFromString("10"), Day: 27, From: "main", To: model.AccountCharityExpenditure},
		},
	}
}

// Validate checks the document without looking at account balances; account
// references are checked once the opening balances are normalized.
func (c *Config) Validate() error {
	var errs []error
	if _, err := time.Parse(DateFormat, c.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("start_date %q: expected YYYY-MM-DD", c.StartDate))
	}
	for name := range c.Accounts {
		if name == "" {
			errs = append(errs, errors.New("accounts: empty account name"))
		}
	}
	for i, g := range c.Generators {
		if _, err := g.Generator(); err != nil {
			errs = append(errs, fmt.Errorf("generators[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Start returns the parsed start date.
func (c *Config) Start() (time.Time, error) {
	t, err := time.Parse(DateFormat, c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing start_date %q: %w", c.StartDate, err)
	}
	return t, nil
}

// OpeningBalances returns the configured balances as a fresh map.
func (c *Config) OpeningBalances() model.Balances {
	b := make(model.Balances, len(c.Accounts))
	for name, v := range c.Accounts {
		b[name] = v
	}
	return b
}

// GeneratorSet converts every generator entry, preserving order.
func (c *Config) GeneratorSet() ([]model.Generator, error) {
	gens := make([]model.Generator, 0, len(c.Generators))
	for i, g := range c.Generators {
		gen, err := g.Generator()
		if err != nil {
			return nil, fmt.Errorf("generators[%d]: %w", i, err)
		}
		gens = append(gens, gen)
	}
	return gens, nil
}
