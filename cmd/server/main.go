// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/richiewg3/DreamWeaver/internal/api"
	"github.com/richiewg3/DreamWeaver/internal/app"
	"github.com/richiewg3/DreamWeaver/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := buildLogger(cfg.DebugMode)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	if err := app.InitServices(cfg, logger); err != nil {
		logger.Fatal("init services", zap.Error(err))
	}

	router, err := api.SetupRouter(logger)
	if err != nil {
		logger.Fatal("setup router", zap.Error(err))
	}

	logger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("data_dir", cfg.DataDir),
		zap.Bool("generation_configured", cfg.Configured()))

	runWithGracefulShutdown(router, cfg.Port, logger)
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// runWithGracefulShutdown serves until SIGINT/SIGTERM, then drains
// in-flight requests and flushes any debounced writes so rapid edits
// made just before shutdown still reach disk.
func runWithGracefulShutdown(handler http.Handler, port string, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serve failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	if d := app.Debouncer(); d != nil {
		d.FlushAll()
	}

	logger.Info("shutdown complete")
}
