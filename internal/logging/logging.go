package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/runway/internal/model"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// New creates a zerolog logger writing to w.
func New(cfg Config, w io.Writer) zerolog.Logger {
	output := w
	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	return zerolog.New(output).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// parseLevel maps a level name to a zerolog level; empty or unknown names
// mean info.
func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// DayLogger logs each simulated day's postings at debug level.
type DayLogger struct {
	Log zerolog.Logger
}

// DayCompleted implements engine.Observer.
func (d DayLogger) DayCompleted(entry model.Entry) {
	for _, p := range entry.Postings {
		d.Log.Debug().
			Str("date", entry.Date.Format("2006-01-02")).
			Str("kind", string(p.Kind)).
			Str("from", p.From).
			Str("to", p.To).
			Str("amount", p.Amount.StringFixed(2)).
			Msg("posting")
	}
}

// Balances adds every account balance to an event as a nested dictionary.
func Balances(e *zerolog.Event, balances model.Balances) *zerolog.Event {
	dict := zerolog.Dict()
	for _, name := range balances.Names() {
		dict = dict.Str(name, balances[name].StringFixed(2))
	}
	return e.Dict("balances", dict)
}
