package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/runway/internal/report"
)

func newExportCommand(a *app) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export projected balances",
	}
	exportCmd.AddCommand(
		newExportSeriesCommand(a),
		newExportHistoryCommand(a),
		newExportPostingsCommand(a),
		newExportChartCommand(a),
	)
	return exportCmd
}

func newExportSeriesCommand(a *app) *cobra.Command {
	var flags runFlags
	var account, output string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Export one account's daily balance as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.run(flags.configPath, flags.horizon(cmd, a.runtime))
			if err != nil {
				return err
			}
			points, err := report.Series(p.history, account)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				return report.WriteSeriesCSV(w, points)
			})
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&account, "account", "", "account to export (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func newExportHistoryCommand(a *app) *cobra.Command {
	var flags runFlags
	var filter, output string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Export every account's balance as CSV, one row per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFilter(filter)
			if err != nil {
				return err
			}
			p, err := a.run(flags.configPath, flags.horizon(cmd, a.runtime))
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				return report.WriteHistoryCSV(w, f.Apply(p.history), p.columns(&flags))
			})
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&filter, "filter", string(report.FilterAll), "days to export: all, month-end or month-start")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func newExportPostingsCommand(a *app) *cobra.Command {
	var flags runFlags
	var output string

	cmd := &cobra.Command{
		Use:   "postings",
		Short: "Export every posting made by the generators as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.run(flags.configPath, flags.horizon(cmd, a.runtime))
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				return report.WritePostingsCSV(w, p.history)
			})
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func newExportChartCommand(a *app) *cobra.Command {
	var flags runFlags
	var title, output string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Export an HTML line chart of account balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.run(flags.configPath, flags.horizon(cmd, a.runtime))
			if err != nil {
				return err
			}

			var series []report.ChartSeries
			for _, name := range p.columns(&flags) {
				points, err := report.Series(p.history, name)
				if err != nil {
					return err
				}
				series = append(series, report.ChartSeries{Name: name, Points: points})
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				return report.WriteChart(w, title, p.cfg.Currency, series...)
			})
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&title, "title", "Balance projection", "chart title")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// writeOutput calls write with the file at path, or stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
