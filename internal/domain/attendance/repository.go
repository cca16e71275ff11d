package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
	GetApprovedOvertimeRequests(ctx context.Context, employeeID string, start, end time.Time) ([]OvertimeRequest, error)
}
