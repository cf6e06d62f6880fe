package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/rogerio-castellano/store-analytics/docs"
	"github.com/rogerio-castellano/store-analytics/internal/app"
	"github.com/rogerio-castellano/store-analytics/internal/config"
	api "github.com/rogerio-castellano/store-analytics/internal/http"
	"github.com/rogerio-castellano/store-analytics/internal/http/handlers"
	rl "github.com/rogerio-castellano/store-analytics/internal/http/rate_limiter"
	"github.com/rogerio-castellano/store-analytics/internal/logging"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Store Analytics Dashboard API
// @version 1.0
// @description Read-only analytics over stores and their products: filters, rollups and rankings.
// @host localhost:8080
// @BasePath /
func main() {
	configPath := flag.String("config", os.Getenv("DASHBOARD_CONFIG"), "path to a config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("could not read .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	limiter := rl.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go limiter.StartCleanupLoop(ctx, time.Minute, 3*time.Minute)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(handlers.NewHandler(a.Service, logger), limiter, logger, api.WithTrustedProxy(cfg.Server.TrustProxy)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.Server.Addr), zap.String("catalog", cfg.Catalog.Backend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
