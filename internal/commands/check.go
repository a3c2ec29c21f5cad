package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/runway/internal/config"
	"github.com/cleared-dev/runway/internal/report"
)

func newCheckCommand(a *app) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a projection config without running it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.load(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: OK\n", configPath)
			fmt.Fprintf(out, "start date: %s\n", p.start.Format(config.DateFormat))
			fmt.Fprintf(out, "generators: %d\n", len(p.gens))
			for _, name := range p.opening.Names() {
				fmt.Fprintf(out, "  %-24s %s\n", name, report.FormatAmount(p.opening[name], p.cfg.Currency))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultFile, "projection config file")

	return cmd
}
