package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/runway/internal/config"
	"github.com/cleared-dev/runway/internal/engine"
	"github.com/cleared-dev/runway/internal/id"
	"github.com/cleared-dev/runway/internal/logging"
	"github.com/cleared-dev/runway/internal/model"
	"github.com/cleared-dev/runway/internal/runlog"
)

// projection is a loaded config ready to simulate, and its result once run.
type projection struct {
	cfg     *config.Config
	opening model.Balances
	gens    []model.Generator
	start   time.Time
	history model.History
}

// runFlags are shared by every command that runs a projection.
type runFlags struct {
	configPath string
	days       int
	accounts   []string
	all        bool
}

func (f *runFlags) register(cmd *cobra.Command, withAccounts bool) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", config.DefaultFile, "projection config file")
	cmd.Flags().IntVar(&f.days, "days", 0, "number of days to project (default $RUNWAY_DAYS or 730)")
	if withAccounts {
		cmd.Flags().StringSliceVarP(&f.accounts, "account", "a", nil, "accounts to include (repeatable, default all configured)")
		cmd.Flags().BoolVar(&f.all, "all", false, "include the default and opening_balances accounts")
	}
}

// horizon returns --days when given, else the environment default.
func (f *runFlags) horizon(cmd *cobra.Command, rt *config.Runtime) int {
	if cmd.Flags().Changed("days") {
		return f.days
	}
	return rt.Days
}

// load reads the config, normalizes the opening balances and checks that every
// generator account exists.
func (a *app) load(path string) (*projection, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	start, err := cfg.Start()
	if err != nil {
		return nil, err
	}
	gens, err := cfg.GeneratorSet()
	if err != nil {
		return nil, err
	}
	opening := engine.Normalize(cfg.OpeningBalances())
	if err := engine.CheckAccounts(gens, opening); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &projection{cfg: cfg, opening: opening, gens: gens, start: start}, nil
}

// run loads path and simulates days days, logging the outcome under a fresh
// run ID.
func (a *app) run(path string, days int, observers ...engine.Observer) (*projection, error) {
	runID := id.NewRunID()
	log := a.log.With().Str("run_id", runID).Str("config", path).Logger()

	record := runlog.Entry{RunID: runID, Config: path, Days: days}

	p, err := a.load(path)
	if err != nil {
		log.Error().Err(err).Msg("loading projection")
		a.recordFailure(record, err)
		return nil, err
	}
	record.Start = p.start.Format(config.DateFormat)

	opts := []engine.Option{engine.WithObserver(logging.DayLogger{Log: log})}
	for _, o := range observers {
		opts = append(opts, engine.WithObserver(o))
	}

	log.Info().
		Str("start", p.start.Format(config.DateFormat)).
		Int("days", days).
		Int("generators", len(p.gens)).
		Msg("projection started")

	p.history, err = engine.Simulate(p.gens, p.opening, p.start, days, opts...)
	if err != nil {
		event := log.Error().Err(err)
		if date, balances, ok := engine.BalanceSheet(err); ok {
			event = logging.Balances(event.Str("date", date.Format(config.DateFormat)), balances)
		}
		event.Msg("projection failed")
		a.recordFailure(record, err)
		return nil, err
	}

	record.Status = runlog.StatusOK
	if last, ok := p.history.Last(); ok {
		record.Details = "ended " + last.Date.Format(config.DateFormat)
		logging.Balances(log.Info().Str("end", last.Date.Format(config.DateFormat)), last.Balances).
			Msg("projection finished")
	}
	a.recordRun(record)
	return p, nil
}

// recordFailure records e as failed with the first line of err; the balance
// dump that may follow goes to the log only.
func (a *app) recordFailure(e runlog.Entry, err error) {
	e.Status = runlog.StatusFailed
	e.Details, _, _ = strings.Cut(err.Error(), "\n")
	a.recordRun(e)
}

// recordRun appends e to the run log when one is configured. A failure to
// write it is logged but does not fail the run.
func (a *app) recordRun(e runlog.Entry) {
	if a.runtime.RunLog == "" {
		return
	}
	e.Timestamp = time.Now().UTC()
	if err := runlog.Append(a.runtime.RunLog, e); err != nil {
		a.log.Warn().Err(err).Str("path", a.runtime.RunLog).Msg("writing run log")
	}
}

// columns picks the accounts to report: the requested ones, every account with
// --all, otherwise the configured accounts in name order.
func (p *projection) columns(f *runFlags) []string {
	if len(f.accounts) > 0 {
		return f.accounts
	}
	if f.all {
		return p.opening.Names()
	}
	names := make([]string, 0, len(p.cfg.Accounts))
	for name := range p.cfg.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
