package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfredjeanlab/corpnet/internal/companieshouse"
	"github.com/alfredjeanlab/corpnet/internal/config"
	"github.com/alfredjeanlab/corpnet/internal/events"
	"github.com/alfredjeanlab/corpnet/internal/graph"
	"github.com/alfredjeanlab/corpnet/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the corpnet HTTP server",
	GroupID: "system",
	// Override PersistentPreRunE; the server builds its own client from
	// environment config.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client := companieshouse.NewHTTPClient(cfg.APIBaseURL, cfg.APIKey)
		client.SetTimeout(cfg.APITimeout)

		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				client.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (CORPNET_NATS_URL not set)")
		}

		srv := server.NewServer(client, publisher, graph.Options{
			MaxCompanies: cfg.MaxCompanies,
			MaxOfficers:  cfg.MaxOfficers,
			Workers:      cfg.Workers,
		})

		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: srv.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr, "api", cfg.APIBaseURL)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := client.Close(); err != nil {
			logger.Error("error closing client", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
