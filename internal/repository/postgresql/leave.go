package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) GetApprovedApplications(ctx context.Context, employeeID string, start, end time.Time) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	// Overlap, not containment: a leave starting last month still covers early days.
	query := `
		SELECT id, employee_id, leave_type_id, from_date, to_date, status, created_at
		FROM leave_applications
		WHERE employee_id = $1 AND status = 'approved'
		  AND from_date <= $3::date AND to_date >= $2::date
		ORDER BY from_date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	defer rows.Close()

	var leaves []leave.LeaveApplication
	for rows.Next() {
		var l leave.LeaveApplication
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.LeaveTypeID, &l.FromDate, &l.ToDate, &l.Status, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		leaves = append(leaves, l)
	}

	return leaves, rows.Err()
}

func (r *leaveRepository) GetApprovedEncashments(ctx context.Context, employeeID string, month, year int) ([]leave.LeaveEncashment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year, days, amount, status, created_at
		FROM leave_encashments
		WHERE employee_id = $1 AND month = $2 AND year = $3 AND status = 'approved'
	`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave encashments: %w", err)
	}
	defer rows.Close()

	var encashments []leave.LeaveEncashment
	for rows.Next() {
		var e leave.LeaveEncashment
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Month, &e.Year, &e.Days, &e.Amount, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave encashment: %w", err)
		}
		encashments = append(encashments, e)
	}

	return encashments, rows.Err()
}

func (r *leaveRepository) GetLeavePolicy(ctx context.Context, id string) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, is_active, created_at
		FROM leave_policies
		WHERE id = $1
	`

	var p leave.LeavePolicy
	err := q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeavePolicy{}, leave.ErrLeavePolicyNotFound
		}
		return leave.LeavePolicy{}, fmt.Errorf("failed to get leave policy: %w", err)
	}

	return p, nil
}
