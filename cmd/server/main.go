package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"currency-exchange-cli/internal/api"
	"currency-exchange-cli/internal/config"
	"currency-exchange-cli/internal/exchange"
	"currency-exchange-cli/internal/logger"
	"currency-exchange-cli/internal/platform"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize exchange client and HTTP handlers
	client := exchange.New(cfg, logger)
	handlers := api.NewHandlers(client, logger)

	gin.SetMode(gin.ReleaseMode)
	router := handlers.SetupRoutes()

	// Setup HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Create a shutdown context that works across platforms
	shutdownCtx, stop := platform.NewShutdownContext(context.Background())
	defer stop()

	group, groupCtx := errgroup.WithContext(shutdownCtx)

	group.Go(func() error {
		logger.Info("Starting exchange rate API on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Shutting down server...")

		// Give outstanding requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	})

	if err := group.Wait(); err != nil {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Info("Server exited")
}
