package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/runway/internal/runlog"
)

func newRunsCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded projection runs from $RUNWAY_RUN_LOG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.runtime.RunLog == "" {
				return errors.New("RUNWAY_RUN_LOG is not set")
			}
			entries, err := runlog.Read(a.runtime.RunLog)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tRUN\tCONFIG\tSTART\tDAYS\tSTATUS\tDETAILS")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					e.Timestamp.Local().Format(time.DateTime), e.RunID, e.Config, e.Start, e.Days, e.Status, e.Details)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show only the most recent runs (0 for all)")

	return cmd
}
