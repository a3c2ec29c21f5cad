package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Runtime holds settings read from the environment rather than runway.yaml.
type Runtime struct {
	LogLevel  string `env:"RUNWAY_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"RUNWAY_LOG_FORMAT" envDefault:"console"`
	// Days is the projection horizon used when --days is not given.
	Days int `env:"RUNWAY_DAYS" envDefault:"730"`
	// RunLog is a CSV file recording every projection run; empty disables it.
	RunLog string `env:"RUNWAY_RUN_LOG"`
}

// LoadRuntime reads Runtime from the environment.
func LoadRuntime() (*Runtime, error) {
	rt := &Runtime{}
	if err := env.Parse(rt); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if rt.Days < 0 {
		return nil, fmt.Errorf("RUNWAY_DAYS must not be negative, got %d", rt.Days)
	}
	return rt, nil
}
