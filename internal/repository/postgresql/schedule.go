package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) GetWorkingHoursPolicy(ctx context.Context, id string) (schedule.WorkingHoursPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name,
			   half_day_deduction_type, half_day_deduction_rate, half_day_deduction_after,
			   short_day_deduction_type, short_day_deduction_rate, short_day_deduction_after,
			   late_deduction_rate, late_deduction_after,
			   overtime_rate, holiday_overtime_rate, weekly_off_days,
			   is_active, created_at, updated_at
		FROM working_hours_policies
		WHERE id = $1
	`

	var p schedule.WorkingHoursPolicy
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name,
		&p.HalfDayDeductionType, &p.HalfDayDeductionRate, &p.HalfDayDeductionAfter,
		&p.ShortDayDeductionType, &p.ShortDayDeductionRate, &p.ShortDayDeductionAfter,
		&p.LateDeductionRate, &p.LateDeductionAfter,
		&p.OvertimeRate, &p.HolidayOvertimeRate, &p.WeeklyOff,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.WorkingHoursPolicy{}, schedule.ErrWorkingHoursPolicyNotFound
		}
		return schedule.WorkingHoursPolicy{}, fmt.Errorf("failed to get working hours policy: %w", err)
	}

	return p, nil
}

func (r *scheduleRepository) GetActiveHolidays(ctx context.Context) ([]schedule.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date_from, date_to, is_active, created_at
		FROM holidays
		WHERE is_active = true
		ORDER BY date_from
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []schedule.Holiday
	for rows.Next() {
		var h schedule.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.DateFrom, &h.DateTo, &h.IsActive, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}
