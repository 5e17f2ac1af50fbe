package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/monocle-wallet-service/internal/api"
	"github.com/monocle-wallet-service/internal/config"
	datamongo "github.com/monocle-wallet-service/internal/data/mongo"
	"github.com/monocle-wallet-service/internal/data/postgres"
	"github.com/monocle-wallet-service/internal/logger"
	"github.com/monocle-wallet-service/internal/paystack"
	"github.com/monocle-wallet-service/internal/platform/messaging/producers"
	"github.com/monocle-wallet-service/internal/platform/persistence"
	"github.com/monocle-wallet-service/internal/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer for wallet credit events
	creditEventProducer, err := producers.NewCreditEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize credit event producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	walletRepo := postgres.NewWalletRepository(log, postgresDB)
	transactionRepo := datamongo.NewTransactionRepository(log, mongoDB.Database())

	// The partial unique index on completed references is the second line of
	// defense for the at-most-once credit invariant
	if err := transactionRepo.EnsureIndexes(appCtx); err != nil {
		log.Error("Failed to ensure transaction indexes", "error", err)
		os.Exit(1)
	}

	// Initialize payment verifier and credit workflow
	verifier := paystack.NewClient(log, &cfg.Paystack)
	creditService := service.NewCreditService(log, verifier, walletRepo, transactionRepo, creditEventProducer, cfg.Exchange)

	// Bound concurrent credit processing with a worker pool
	pooledService, err := service.NewWorkerPoolCreditService(creditService, service.WorkerPoolConfig{Size: cfg.WorkerPool.Size}, log)
	if err != nil {
		log.Error("Failed to initialize worker pool", "error", err)
		os.Exit(1)
	}

	// Initialize REST server
	server := api.NewServer(log, cfg, pooledService, walletRepo, transactionRepo)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Stop accepting new requests, then drain the worker pool
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}
	pooledService.Shutdown()

	if err = creditEventProducer.Close(); err != nil {
		log.Error("Error closing credit event producer", "error", err)
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
