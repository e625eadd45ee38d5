package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ad-console/internal/adapter/adserver"
	"ad-console/internal/adapter/badgerstore"
	httpadapter "ad-console/internal/adapter/http"
	"ad-console/internal/adapter/usecase"
	"ad-console/internal/config"
	"ad-console/internal/core/domain"
	"ad-console/internal/core/port"
	"ad-console/internal/poller"
)

// main is the entry point of the ad server console. It loads
// configuration, opens the settings store, wires the console services
// and background pollers, then starts the HTTP server. On receiving a
// termination signal it stops the pollers and gracefully shuts down the
// server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout))
	slog.SetDefault(logger)

	store, err := badgerstore.Open(cfg.Store.Dir)
	if err != nil {
		logger.Error("settings store error", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	httpc := adserver.NewHTTPClient(cfg.Upstream.Timeout)
	settings := usecase.NewSettings(store, cfg.Upstream.Address, httpc, logger)
	console := usecase.NewConsole(settings, func(baseURL string) port.AdServer {
		return adserver.NewClient(baseURL, httpc)
	}, logger)

	sessionPoller := poller.New(cfg.Upstream.SessionPollInterval, func(ctx context.Context) (*domain.SessionPage, error) {
		return console.Sessions(ctx, "", "")
	})
	healthPoller := poller.New(cfg.Upstream.HealthPollInterval, func(ctx context.Context) (bool, error) {
		return console.Health(ctx), nil
	})
	sessionPoller.Start(ctx)
	healthPoller.Start(ctx)
	defer sessionPoller.Stop()
	defer healthPoller.Stop()

	handler := httpadapter.NewHandler(console, settings, sessionPoller, healthPoller, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("console listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
