package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/tipline/internal/api"
	"github.com/jonesrussell/tipline/internal/config"
	"github.com/jonesrussell/tipline/internal/database"
	"github.com/jonesrussell/tipline/internal/logging"
	"github.com/jonesrussell/tipline/internal/patterns"
	"github.com/jonesrussell/tipline/internal/processor"
	"github.com/jonesrussell/tipline/internal/telemetry"
	"github.com/jonesrussell/tipline/internal/verifier"
)

const shutdownTimeout = 30 * time.Second

// Run wires the whole service and blocks until shutdown: config, logger,
// database, pattern catalog, verification pipeline, HTTP server.
func Run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, flush, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer flush()

	logger.Info("Starting tipline HTTP server",
		"port", cfg.Service.Port,
		"debug", cfg.Service.Debug,
	)

	logger.Info("Connecting to PostgreSQL database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Database,
	)

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	patternsRepo := database.NewPatternsRepository(db)
	tipsterRepo := database.NewTipsterRepository(db)
	leadsRepo := database.NewLeadsRepository(db)
	tipsRepo := database.NewTipsRepository(db)
	historyRepo := database.NewHistoryRepository(db)

	logger.Info("Repositories initialized")

	tel := telemetry.NewProvider()

	catalog := patterns.NewCatalog(patternsRepo, tel, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := catalog.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load scam patterns: %w", err)
	}
	go catalog.Run(ctx, cfg.Verification.PatternReloadInterval)

	engine := verifier.New(verifier.Config{
		ProximityRadiusKm:            cfg.Verification.ProximityRadiusKm,
		CrossRefSimilarityThreshold:  cfg.Verification.CrossRefSimilarityThreshold,
		DuplicateSimilarityThreshold: cfg.Verification.DuplicateSimilarityThreshold,
	}, tel, logger, nil)

	logger.Info("Verification engine initialized", "version", verifier.EngineVersion)

	pipeline := processor.NewPipeline(
		engine,
		catalog,
		tipsterRepo,
		leadsRepo,
		tipsRepo,
		historyRepo,
		processor.Config{
			Concurrency:     cfg.Service.Concurrency,
			RecentTipsLimit: cfg.Verification.RecentTipsLimit,
			RequestsPerSec:  cfg.Service.RequestsPerSec,
			RequestBurst:    cfg.Service.RequestBurst,
		},
		tel,
		logger,
	)

	logger.Info("Verification pipeline initialized", "concurrency", cfg.Service.Concurrency)

	handler := api.NewHandler(
		pipeline,
		catalog,
		patternsRepo,
		tipsterRepo,
		historyRepo,
		cfg.Service.BatchLimit,
		db.Ping,
		logger,
	)

	server := api.NewServer(handler, cfg, tel.Handler(), logger)

	serverErrors := server.StartAsync()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		logger.Info("Server stopped gracefully")
		return nil
	}
}
