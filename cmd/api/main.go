package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/vegshop-golang/internal/config"
	"github.com/01moynul/vegshop-golang/internal/database"
	"github.com/01moynul/vegshop-golang/internal/handlers"
	"github.com/01moynul/vegshop-golang/internal/logger"
	"github.com/01moynul/vegshop-golang/internal/repository"
	"github.com/01moynul/vegshop-golang/internal/routes"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", true)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(cfg.LogLevel, !cfg.IsProduction())
	if envErr != nil {
		log.Warn().Msg("could not load .env file, relying on system environment variables")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Open(ctx, cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}, log)
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// 2. --- Schema ---
	if cfg.AutoMigrate {
		if err := database.EnsureSchema(ctx, db); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("failed to create tables")
		}
	}
	cancel()

	// --- Application Setup ---
	app := &handlers.Handlers{
		Vegetables: repository.NewVegetableRepository(db),
		Orders:     repository.NewOrderRepository(db),
		DB:         db,
		Log:        log,
	}

	// --- Router Setup ---
	router, err := routes.SetupRouter(app, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up router")
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	// --- Start Server ---
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("starting vegshop API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
