package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vsrin/en-app-analytics/internal/api"
	"github.com/vsrin/en-app-analytics/internal/config"
	"github.com/vsrin/en-app-analytics/internal/logger"
	"github.com/vsrin/en-app-analytics/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	store, err := connectStore(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database", logger.Error(err))
		return 1
	}
	defer func() {
		if closeErr := store.Close(context.Background()); closeErr != nil {
			log.Warn("Failed to close database connection", logger.Error(closeErr))
		}
	}()

	server := api.NewServer(cfg, store, log)
	if runErr := server.Run(context.Background()); runErr != nil {
		log.Error("Server terminated with error", logger.Error(runErr))
		return 1
	}
	return 0
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// connectStore opens and verifies the MongoDB connection.
func connectStore(cfg *config.Config, log logger.Logger) (*storage.Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.PingTimeout)
	defer cancel()

	store, err := storage.Connect(ctx, cfg.Database.URI, cfg.Database.Database)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	log.Info("Database connected",
		logger.String("database", cfg.Database.Database),
	)
	return store, nil
}
