package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/runway/internal/metrics"
	"github.com/cleared-dev/runway/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var flags runFlags
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a projection once and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := prometheus.NewRegistry()
			p, err := a.run(flags.configPath, flags.horizon(cmd, a.runtime), metrics.New(registry))
			if err != nil {
				return err
			}

			h := server.NewHandler(p.history, p.cfg.Currency, p.columns(&flags))
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.NewRouter(h, registry),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("addr", addr).Msg("serving projection")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serving: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}
			a.log.Info().Msg("server stopped")
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
