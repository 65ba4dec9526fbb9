package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ELpastelAnyCtt/BurnBox/internal/api"
	"github.com/ELpastelAnyCtt/BurnBox/internal/config"
	"github.com/ELpastelAnyCtt/BurnBox/internal/metrics"
	"github.com/ELpastelAnyCtt/BurnBox/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	// Initialize the in-memory store with the official catalog
	st := store.NewMemoryStore(cfg.DefaultRoomLifetime)
	st.Seed()
	presence := store.NewPresenceCounter(store.SeedOnlineUsers)

	metrics.ActiveRooms.Set(float64(st.Stats().TotalRooms))
	metrics.OnlineUsers.Set(float64(presence.Count()))

	// Start the auto-destruct sweeper
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	sweeper := store.NewSweeper(st, cfg.SweepInterval, logger)
	go sweeper.Run(sweepCtx)

	logger.Info().
		Dur("interval", cfg.SweepInterval).
		Int("default_lifetime_minutes", cfg.DefaultRoomLifetime).
		Msg("auto-destruct sweeper started")

	// Create router
	router := api.NewRouter(logger, st, presence, cfg.StaticDir)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting BurnBox server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	stopSweeper()

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
