package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/messaging/kafka/producer"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/repository/postgresql"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if cfg.App.Env == "development" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Println("Error building logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Fatal("KAFKA_BROKERS is required for the outbox worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 5, MinConns: 1})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	writer := producer.NewWriter(cfg.Kafka.Brokers)
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("failed to close kafka writer", zap.Error(err))
		}
	}()

	outboxRepo := postgresql.NewOutboxRepository(db)

	logger.Info("starting payroll outbox worker",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.Duration("poll_interval", cfg.Kafka.PollInterval),
	)
	producer.ProcessOutboxEvents(ctx, outboxRepo, writer, logger, cfg.Kafka.PollInterval)
}
