package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/learnpulse/internal/api"
	"github.com/vytor/learnpulse/internal/auth"
	"github.com/vytor/learnpulse/internal/config"
	"github.com/vytor/learnpulse/internal/db"
	"github.com/vytor/learnpulse/internal/jobs"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/repository/sqlite"
	"github.com/vytor/learnpulse/internal/services"
	"github.com/vytor/learnpulse/internal/vault"
	"github.com/vytor/learnpulse/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("LearnPulse server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s log_format=%s", cfg.LogLevel, cfg.LogFormat)
	log.Debug("retention_worker_count=%d", cfg.RetentionWorkerCount)
	log.Debug("retention_queue_size=%d", cfg.RetentionQueueSize)
	log.Debug("retention_interval=%s", cfg.RetentionInterval)
	log.Debug("match_concurrency=%d", cfg.MatchConcurrency)
	log.Debug("recent_event_window=%d", cfg.RecentEventWindow)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	fieldVault, err := vault.FromHex(cfg.EncryptionKey)
	if err != nil {
		log.Error("failed to initialize encryption: %v", err)
		os.Exit(1)
	}
	if !fieldVault.Enabled() {
		log.Warn("ENCRYPTION_KEY not set; protected report fields will be stored in plaintext")
	}

	// Initialize repositories
	progressRepo := sqlite.NewProgressRepository(database.DB)
	metricsRepo := sqlite.NewMetricsRepository(database.DB)
	gapRepo := sqlite.NewGapRepository(database.DB)
	insightRepo := sqlite.NewInsightRepository(database.DB)
	reportRepo := sqlite.NewReportRepository(database.DB)
	matchRepo := sqlite.NewMatchRepository(database.DB)
	userRepo := sqlite.NewUserRepository(database.DB)
	privacyRepo := sqlite.NewPrivacyRepository(database.DB)

	// Initialize services
	userService := services.NewUserService(userRepo, time.Now)
	metricsService := services.NewMetricsService(progressRepo, metricsRepo, time.Now)
	privacyService := services.NewPrivacyService(privacyRepo, progressRepo, insightRepo, reportRepo, time.Now)

	srv := &api.Server{
		DB:                database,
		Verifier:          auth.NewVerifier(cfg.AuthSecret, cfg.AuthIssuer),
		UserService:       userService,
		ProgressService:   services.NewProgressService(progressRepo, metricsService, time.Now),
		MetricsService:    metricsService,
		GapService:        services.NewGapService(progressRepo, gapRepo, time.Now),
		DifficultyService: services.NewDifficultyService(progressRepo, metricsService, cfg.RecentEventWindow),
		InsightService:    services.NewInsightService(metricsRepo, gapRepo, insightRepo, time.Now),
		ReportService:     services.NewReportService(metricsRepo, progressRepo, reportRepo, privacyService, fieldVault, time.Now),
		MatchService:      services.NewMatchService(userRepo, metricsRepo, privacyRepo, matchRepo, metricsService, cfg.MatchConcurrency, time.Now),
		PrivacyService:    privacyService,
		DashboardService:  services.NewDashboardService(metricsRepo, progressRepo),
	}

	// Retention runs in the background on its own pool
	ctx, cancel := context.WithCancel(context.Background())
	retentionPool := worker.NewPool(cfg.RetentionWorkerCount, cfg.RetentionQueueSize)
	retentionPool.Start(ctx)

	sweeper := jobs.NewRetentionSweeper(jobs.NewWorkerQueue(retentionPool, privacyService), userService, cfg.RetentionInterval)
	go sweeper.Run(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping retention sweeper and pool")
	cancel()
	retentionPool.Stop()

	log.Info("LearnPulse server stopped")
}
