package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/runway/internal/buildinfo"
	"github.com/cleared-dev/runway/internal/config"
	"github.com/cleared-dev/runway/internal/logging"
)

// app carries what every subcommand needs once the root command has read the
// environment.
type app struct {
	runtime *config.Runtime
	log     zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:     "runway",
		Short:   "Project account balances forward from recurring rules",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt, err := config.LoadRuntime()
			if err != nil {
				return err
			}
			a.runtime = rt
			a.log = logging.New(logging.Config{Level: rt.LogLevel, Format: rt.LogFormat}, cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newCheckCommand(a),
		newProjectCommand(a),
		newExportCommand(a),
		newServeCommand(a),
		newRunsCommand(a),
	)

	return rootCmd
}
