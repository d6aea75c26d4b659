package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amiyamandal-dev/bizbrief/internal/api"
	"github.com/amiyamandal-dev/bizbrief/internal/api/handlers"
	"github.com/amiyamandal-dev/bizbrief/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser UI",
	Long: `Serves the server-rendered browser UI. Every page is rendered from the
backend on request; the credential lives in the authToken cookie.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Info("Starting BizBrief web client",
		"mode", cfg.Server.Mode,
		"backend", cfg.Backend.BaseURL,
	)

	client, err := newBackend()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Ping(ctx); err != nil {
		log.Warn("Backend is not reachable", "backend", cfg.Backend.BaseURL, "error", err)
	}

	healthHandler := handlers.NewHealthHandler(client, log)
	webHandler := web.NewWebHandler(client, cfg.UI, log)

	router := api.NewRouter(healthHandler, webHandler, cfg, log)
	engine := router.Setup()

	addr := cfg.Server.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("Server failed to start", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}
