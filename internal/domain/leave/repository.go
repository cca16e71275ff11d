package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// GetApprovedApplications returns approved leaves overlapping start..end.
	GetApprovedApplications(ctx context.Context, employeeID string, start, end time.Time) ([]LeaveApplication, error)
	GetApprovedEncashments(ctx context.Context, employeeID string, month, year int) ([]LeaveEncashment, error)
	GetLeavePolicy(ctx context.Context, id string) (LeavePolicy, error)
}
