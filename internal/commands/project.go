package commands

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/runway/internal/engine"
	"github.com/cleared-dev/runway/internal/metrics"
	"github.com/cleared-dev/runway/internal/report"
)

func newProjectCommand(a *app) *cobra.Command {
	var flags runFlags
	var filter string
	var metricsFile string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print projected balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFilter(filter)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			var observers []engine.Observer
			if metricsFile != "" {
				observers = append(observers, metrics.New(registry))
			}

			p, err := a.run(flags.configPath, flags.horizon(cmd, a.runtime), observers...)
			if err != nil {
				return err
			}

			if err := report.Print(cmd.OutOrStdout(), f.Apply(p.history), p.columns(&flags), p.cfg.Currency); err != nil {
				return fmt.Errorf("printing report: %w", err)
			}

			if metricsFile != "" {
				if err := metrics.WriteTextfile(metricsFile, registry); err != nil {
					return fmt.Errorf("writing metrics: %w", err)
				}
			}
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&filter, "filter", string(report.FilterMonthEnd), "days to show: all, month-end or month-start")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics for the run to this file")

	return cmd
}
