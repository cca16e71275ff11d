package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/messaging/kafka"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type outboxRepository struct {
	db *database.DB
}

// NewOutboxRepository stores outbox rows. Create joins the transaction carried
// by ctx so an event commits with the state change it announces.
func NewOutboxRepository(db *database.DB) kafka.OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO outbox_events (
			id, aggregate_type, aggregate_id, event_type, topic, payload, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		event.ID, event.AggregateType, event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, aggregate_type, aggregate_id, event_type, topic, payload,
			   status, retry_count, next_retry_at, created_at
		FROM outbox_events
		WHERE status IN ($1, $2) AND next_retry_at <= NOW()
		ORDER BY created_at ASC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, kafka.OutboxStatusPending, kafka.OutboxStatusFailed, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending outbox events: %w", err)
	}
	defer rows.Close()

	events := make([]kafka.OutboxEvent, 0, limit)
	for rows.Next() {
		var e kafka.OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Topic, &e.Payload,
			&e.Status, &e.RetryCount, &e.NextRetryAt, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE outbox_events
		SET status = $2, sent_at = NOW(), last_error = NULL
		WHERE id = $1
	`

	if _, err := q.Exec(ctx, query, id, kafka.OutboxStatusSent); err != nil {
		return fmt.Errorf("failed to mark outbox event sent: %w", err)
	}
	return nil
}

// MarkFailed schedules a retry with a linear backoff capped at 150 seconds.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE outbox_events
		SET status = $2,
			retry_count = retry_count + 1,
			last_error = LEFT($3, 500),
			next_retry_at = NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds')
		WHERE id = $1
	`

	if _, err := q.Exec(ctx, query, id, kafka.OutboxStatusFailed, reason); err != nil {
		return fmt.Errorf("failed to mark outbox event failed: %w", err)
	}
	return nil
}
