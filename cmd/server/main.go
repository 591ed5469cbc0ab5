package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/stockfolio/backend/internal/adapter/httpapi"
	"github.com/stockfolio/backend/internal/adapter/quote"
	"github.com/stockfolio/backend/internal/adapter/repository/sqlite"
	"github.com/stockfolio/backend/internal/config"
	"github.com/stockfolio/backend/internal/usecase/portfolio"
	"github.com/stockfolio/backend/internal/usecase/refresh"
	"github.com/stockfolio/backend/internal/usecase/seeder"
	"github.com/stockfolio/backend/internal/usecase/view"
)

func main() {
	// 1. Configuration and logging
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)

	// 2. Database
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("Failed to open database")
	}
	defer db.Close()

	// 3. Repositories and services
	lotRepo := sqlite.NewLotRepository(db)
	historyRepo := sqlite.NewPriceHistoryRepository(db)

	portfolioService := portfolio.NewService(lotRepo, cfg.ExchangeSuffix)
	board := view.NewBoard()
	quoteClient := quote.NewYahooClient(log)
	engine := refresh.NewEngine(
		portfolioService, historyRepo, quoteClient, board,
		cfg.ReportingCurrency, cfg.MaxConcurrentFetches, log,
	)

	ctx := context.Background()

	// 4. Optional demo data
	if cfg.SeedDemo {
		if err := seeder.NewDemoSeeder(portfolioService, log).Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo portfolio")
		}
	}

	// Populate the valuation view with placeholders before the first refresh.
	positions, err := portfolioService.ListPositions(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read positions")
	}
	board.Reset(positions)

	// 5. Optional scheduled refresh
	var scheduler *cron.Cron
	if cfg.RefreshSchedule != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.RefreshSchedule, func() {
			if engine.Running() {
				log.Debug().Msg("Skipping scheduled refresh, cycle already running")
				return
			}
			engine.Start(ctx)
		})
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.RefreshSchedule).Msg("Invalid refresh schedule")
		}
		scheduler.Start()
		log.Info().Str("schedule", cfg.RefreshSchedule).Msg("Scheduled refresh enabled")
	}

	// 6. HTTP server
	server := httpapi.NewServer(
		portfolioService, engine, board, historyRepo,
		cfg.ReportingCurrency, cfg.APIToken, log,
	)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Handler(),
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	waitForShutdown(httpServer, scheduler, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down.
func waitForShutdown(httpServer *http.Server, scheduler *cron.Cron, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
