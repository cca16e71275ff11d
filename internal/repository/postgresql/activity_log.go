package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/activitylog"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type activityLogRepository struct {
	db *database.DB
}

func NewActivityLogRepository(db *database.DB) activitylog.Logger {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Log(ctx context.Context, entry activitylog.ActivityLog) error {
	q := GetQuerier(ctx, r.db)

	var metadata []byte
	if len(entry.Metadata) > 0 {
		var err error
		if metadata, err = json.Marshal(entry.Metadata); err != nil {
			return fmt.Errorf("failed to encode activity log metadata: %w", err)
		}
	}

	query := `
		INSERT INTO activity_logs (id, user_id, module, action, description, status, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		entry.ID, entry.UserID, entry.Module, entry.Action, entry.Description, entry.Status, metadata, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}
	return nil
}
