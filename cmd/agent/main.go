package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/affanabid/Hiro/internal/config"
	handler "github.com/affanabid/Hiro/internal/delivery/http"
	"github.com/affanabid/Hiro/internal/remote/rest"
	"github.com/affanabid/Hiro/internal/view"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting Hiro dashboard agent")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Jobs API client and view model
	collection := rest.NewCollection(cfg.Jobs.BaseURL, cfg.Jobs.Timeout)
	vm := view.New(collection, logger)

	// Initial population; a failure here is not fatal, the first
	// successful refresh will fill the snapshot.
	ctx := context.Background()
	if err := vm.Refresh(ctx); err != nil {
		logger.Warn("Initial snapshot fetch failed, starting empty",
			zap.String("jobs_api", cfg.Jobs.BaseURL),
			zap.Error(err),
		)
	} else {
		logger.Info("Initial snapshot loaded", zap.Int("jobs", len(vm.Snapshot().Jobs)))
	}

	// Initialize router
	router := handler.NewRouter(vm, collection, logger, cfg.Server.RateLimit)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Agent listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down agent...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Agent stopped")
}
