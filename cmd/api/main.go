package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gestor-financeiro/internal/api"
	"github.com/gestor-financeiro/internal/api/service"
	"github.com/gestor-financeiro/internal/config"
	"github.com/gestor-financeiro/internal/data/mongo"
	"github.com/gestor-financeiro/internal/data/postgres"
	"github.com/gestor-financeiro/internal/extraction"
	"github.com/gestor-financeiro/internal/logger"
	"github.com/gestor-financeiro/internal/platform/messaging/producers"
	"github.com/gestor-financeiro/internal/platform/persistence"
	"github.com/gestor-financeiro/internal/transcription"
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

	// Initialize Kafka producer for spending-created events
	kafkaProducer, err := producers.NewSpendingEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize Kafka producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	spendingRepo := postgres.NewSpendingRepository(log, postgresDB)
	attemptRepo := mongo.NewAttemptRepository(log, mongoDB.Database())

	// Initialize outbound model clients
	llmClient := extraction.NewClient(log, &cfg.LLM)
	whisperClient := transcription.NewClient(log, &cfg.Whisper)

	// Initialize services
	spendingService := service.NewSpendingService(spendingRepo, postgresDB)
	processingService := service.NewProcessingService(log, llmClient, whisperClient, spendingRepo, attemptRepo, kafkaProducer)

	// Initialize REST server
	server := api.NewServer(log, cfg, processingService, spendingService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port, "https", cfg.Server.UseHTTPS)
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

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	postgresDB.Close()

	if err = kafkaProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

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
