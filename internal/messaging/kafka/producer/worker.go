package producer

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/messaging/kafka"
	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
)

// ========== RELAY LOOP ==========

// ProcessOutboxEvents drains the outbox once on start, then once per poll
// interval until ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	log := logger.Named("outbox.relay").With(zap.Duration("poll_interval", pollInterval))
	log.Info("outbox relay started")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if _, err := ProcessPendingEvents(ctx, repo, writer, log); err != nil && ctx.Err() == nil {
			log.Error("outbox relay pass failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			log.Info("outbox relay stopped")
			return
		case <-ticker.C:
		}
	}
}

// ========== BATCH ==========

// ProcessPendingEvents relays one batch of pending rows and returns how many
// reached the broker. Rows that fail stay in the outbox for the next pass.
func ProcessPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending outbox events: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	sent := 0
	for _, event := range events {
		if err := relayEvent(ctx, repo, writer, event); err != nil {
			logger.Warn("outbox event not relayed",
				zap.String("outbox_id", event.ID),
				zap.String("aggregate_id", event.AggregateID),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	logger.Info("outbox batch relayed",
		zap.Int("pending", len(events)),
		zap.Int("sent", sent),
	)
	return sent, nil
}

// relayEvent writes one row to the broker and records the outcome on the row.
// The broker error is stored as the row's failure reason.
func relayEvent(ctx context.Context, repo kafka.OutboxRepository, writer MessageWriter, event kafka.OutboxEvent) error {
	if pubErr := publishEvent(ctx, writer, event); pubErr != nil {
		if err := repo.MarkFailed(ctx, event.ID, pubErr.Error()); err != nil {
			return fmt.Errorf("failed to record publish failure (%v): %w", pubErr, err)
		}
		return fmt.Errorf("failed to publish to %s: %w", event.Topic, pubErr)
	}

	if err := repo.MarkSent(ctx, event.ID); err != nil {
		return fmt.Errorf("failed to mark event sent: %w", err)
	}
	return nil
}
