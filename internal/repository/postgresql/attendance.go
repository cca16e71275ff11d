package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, status, clock_in, clock_out,
			   late_minutes, working_hours, overtime_hours, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.ClockIn, &a.ClockOut,
			&a.LateMinutes, &a.WorkingHours, &a.OvertimeHours, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

func (r *attendanceRepository) GetApprovedOvertimeRequests(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, weekday_hours, holiday_hours, status, created_at
		FROM overtime_requests
		WHERE employee_id = $1 AND status = 'approved'
		  AND date BETWEEN $2::date AND $3::date
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer rows.Close()

	var requests []attendance.OvertimeRequest
	for rows.Next() {
		var o attendance.OvertimeRequest
		if err := rows.Scan(
			&o.ID, &o.EmployeeID, &o.Date, &o.WeekdayHours, &o.HolidayHours, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, o)
	}

	return requests, rows.Err()
}
