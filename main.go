package main

import (
	"context"
	"log"
	"os"

	"currency-exchange-cli/internal/config"
	"currency-exchange-cli/internal/exchange"
	"currency-exchange-cli/internal/logger"
	"currency-exchange-cli/internal/shell"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize exchange client and interactive shell
	client := exchange.New(cfg, logger)
	interactive := shell.New(os.Stdin, os.Stdout, client)

	if err := interactive.Run(context.Background()); err != nil {
		logger.Fatalf("Exchange query failed: %v", err)
	}
}
