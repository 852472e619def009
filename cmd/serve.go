package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/api"
	"github.com/abhisek/leitner/internal/clock"
	"github.com/abhisek/leitner/internal/sessionstore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API for web front ends",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ServerAddress
		}
		maxIdle, _ := cmd.Flags().GetDuration("session-idle")
		sweep, _ := cmd.Flags().GetDuration("sweep")
		if sweep <= 0 {
			return errors.New("--sweep must be positive")
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
		slog.SetDefault(logger)

		// ── Dependencies ────────────────────────────────────────────────
		d, err := openDeps(cmd)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			return err
		}
		defer d.Close()

		clk := clock.System{}
		handler := api.NewHandler(api.Deps{
			Catalog:  d.catalog,
			Progress: d.progress,
			Game:     d.store.GameRepo(),
			Events:   d.store.EventRepo(),
			Sessions: sessionstore.New(clk),
			Clock:    clk,
			Logger:   logger,
		})

		// ── Server ──────────────────────────────────────────────────────
		server := &http.Server{
			Addr:              addr,
			Handler:           api.NewServer(handler),
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		ctx := cmd.Context()
		go func() {
			ticker := time.NewTicker(sweep)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if n := handler.ExpireIdle(ctx, maxIdle); n > 0 {
						logger.Info("expired idle sessions", "count", n)
					}
				}
			}
		}()

		stopped := make(chan struct{})
		go func() {
			defer close(stopped)
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			logger.Info("shutting down server")
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("server forced to shutdown", "error", err)
			}
		}()

		logger.Info("starting server", "address", addr, "backend", cfg.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed to start", "error", err)
			return err
		}
		<-stopped

		// Sessions still open at shutdown keep their answers.
		if n := handler.ExpireIdle(context.Background(), -time.Hour); n > 0 {
			logger.Info("saved open sessions", "count", n)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default LEITNER_ADDR or :5004)")
	serveCmd.Flags().Duration("session-idle", 2*time.Hour, "End sessions idle longer than this")
	serveCmd.Flags().Duration("sweep", 5*time.Minute, "How often to look for idle sessions")
}
