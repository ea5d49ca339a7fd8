package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/microplastics-etl/internal/adapter/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run one pipeline pass, then serve health, metrics and the documents over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		srv := httpadapter.NewServer(a.cfg.HTTPAddr, a.pipeline, a.cfg.OutputDir, a.metrics.Gatherer(), a.logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		g, gctx := errgroup.WithContext(ctx)

		// Start HTTP server first so /readyz reports progress during the run.
		g.Go(func() error {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			// A failed run leaves the server up but not ready.
			if _, err := a.pipeline.Run(gctx); err != nil {
				a.logger.Error("initial run failed", "error", err)
			}
			a.exportMetrics()

			<-gctx.Done()
			a.logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		err = g.Wait()
		a.logger.Info("shutdown complete")
		return err
	},
}
