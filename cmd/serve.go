package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bestfriendai/SupaSecret-sub011/config"
	"github.com/bestfriendai/SupaSecret-sub011/internal/api"
	"github.com/bestfriendai/SupaSecret-sub011/internal/handlers"
	"github.com/bestfriendai/SupaSecret-sub011/internal/metrics"
	"github.com/bestfriendai/SupaSecret-sub011/internal/services"
	"github.com/bestfriendai/SupaSecret-sub011/internal/trending"
)

type application struct {
	config      *config.Config
	logger      *slog.Logger
	server      *http.Server
	store       *services.SecretStore
	trends      *services.TrendingService
	preferences *services.PreferencesService
}

// New creates and initializes a new application instance with all dependencies
func New(cfg *config.Config, logger *slog.Logger) (*application, error) {
	serviceMetrics := metrics.New()

	// Initialize services with dependency injection
	feedClient := services.NewFeedClient(cfg.GetFeedURL(), logger)
	store := services.NewSecretStore(feedClient, logger)
	aggregator := trending.NewAggregator()

	trendsService := services.NewTrendingService(
		store,
		aggregator,
		logger,
		serviceMetrics,
		cfg.Trending.DefaultWindowHours,
		cfg.Trending.DefaultLimit,
		time.Duration(cfg.Trending.RefreshQuietMs)*time.Millisecond,
	)

	// Each ingested secret nudges the debounced snapshot refresh
	store.SetOnAdd(trendsService.NotifyIngest)

	preferencesService, err := services.NewPreferencesService(
		cfg.Preferences.Path,
		time.Duration(cfg.Preferences.SaveQuietMs)*time.Millisecond,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize preferences: %w", err)
	}

	trendingHandler := handlers.NewTrendingHandler(trendsService, logger, serviceMetrics, cfg.Trending.DefaultWindowHours, cfg.Trending.DefaultLimit)
	preferencesHandler := handlers.NewPreferencesHandler(preferencesService, logger)

	router := api.NewRouter(trendingHandler, preferencesHandler)

	// Configure HTTP server
	server := &http.Server{
		Addr:    cfg.GetServerAddress(),
		Handler: router,
	}

	return &application{
		config:      cfg,
		logger:      logger,
		server:      server,
		store:       store,
		trends:      trendsService,
		preferences: preferencesService,
	}, nil
}

// Run starts the feed ingest and the HTTP server and handles graceful shutdown.
// Uses BaseContext to propagate cancellation to all active requests when shutdown is initiated.
func (app *application) Run() error {
	// Create a context that will be cancelled when shutdown is initiated.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// All requests inherit this context and are notified when we cancel it
	// during shutdown.
	app.server.BaseContext = func(_ net.Listener) context.Context {
		return ctx
	}

	// Consume the secrets feed for as long as the server runs
	go app.runIngest(ctx)

	// Channel to communicate shutdown errors from the shutdown goroutine
	shutdownErrCh := make(chan error)

	// Handle graceful shutdown in a separate goroutine
	go func() {
		// Channel to receive OS signals for graceful shutdown
		signalCh := make(chan os.Signal, 1)
		signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

		// Block until we receive a shutdown signal
		sig := <-signalCh
		app.logger.Info("Shutdown signal received", "signal", sig.String())

		// Cancel the base context (this stops the ingest loop and signals
		// all active requests that shutdown is happening)
		cancel()

		// Create a context with timeout for the shutdown process itself
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		app.logger.Info("Shutting down server gracefully...")
		err := app.server.Shutdown(shutdownCtx)
		if err != nil {
			shutdownErrCh <- err
			return
		}

		app.logger.Info("Server stopped gracefully")
		shutdownErrCh <- nil
	}()

	// Start the server (this blocks until the server is shut down)
	app.logger.Info("HTTP server starting", "address", app.config.GetServerAddress())
	err := app.server.ListenAndServe()

	// ListenAndServe always returns an error.
	// After Shutdown or Close, the error is ErrServerClosed.
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	// Wait for the shutdown goroutine to finish and report any errors
	shutdownErr := <-shutdownErrCh

	// Stop the debounced snapshot refresher and flush pending preferences
	app.trends.Close()
	if err := app.preferences.Close(); err != nil {
		app.logger.Error("Failed to flush preferences on shutdown", "err", err.Error())
	}

	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	return nil
}

// runIngest consumes the secrets feed, reconnecting after transient errors
// until the context is cancelled
func (app *application) runIngest(ctx context.Context) {
	for {
		err := app.store.Run(ctx)

		if ctx.Err() != nil {
			app.logger.Info("Feed ingest stopped")
			return
		}

		if err != nil {
			app.logger.Error("Feed ingest interrupted, reconnecting", "err", err.Error())
		} else {
			app.logger.Info("Feed ended, reconnecting")
		}

		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
			app.logger.Info("Feed ingest stopped")
			return
		}
	}
}
