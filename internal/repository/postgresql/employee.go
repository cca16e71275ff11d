package postgresql

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetActive(ctx context.Context, ids []string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	where := sq.And{
		sq.Eq{"status": employee.EmploymentStatusActive},
		sq.Eq{"deleted_at": nil},
	}
	if len(ids) > 0 {
		where = append(where, sq.Eq{"id": ids})
	}

	query, args, err := sq.Select(
		"id",
		"employee_code",
		"full_name",
		"status",
		"base_package",
		"is_overtime_eligible",
		"is_eobi_enabled",
		"is_provident_fund_enabled",
		"working_hours_policy_id",
		"leave_policy_id",
		"social_security_institution_id",
		"created_at",
		"updated_at",
	).
		From("employees").
		Where(where).
		OrderBy("employee_code").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build active employees query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.EmployeeCode, &e.FullName, &e.Status, &e.BasePackage,
			&e.IsOvertimeEligible, &e.IsEOBIEnabled, &e.IsProvidentFundEnabled,
			&e.WorkingHoursPolicyID, &e.LeavePolicyID, &e.SocialSecurityInstitutionID,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

func (r *employeeRepository) GetIncrements(ctx context.Context, employeeID string) ([]employee.Increment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, effective_date, new_package, kind, method,
			   change_amount, change_percentage, created_at
		FROM employee_increments
		WHERE employee_id = $1
		ORDER BY effective_date, created_at
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list increments: %w", err)
	}
	defer rows.Close()

	var increments []employee.Increment
	for rows.Next() {
		var inc employee.Increment
		if err := rows.Scan(
			&inc.ID, &inc.EmployeeID, &inc.EffectiveDate, &inc.NewPackage, &inc.Kind, &inc.Method,
			&inc.ChangeAmount, &inc.ChangePercentage, &inc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan increment: %w", err)
		}
		increments = append(increments, inc)
	}

	return increments, rows.Err()
}

func (r *employeeRepository) GetBankInfo(ctx context.Context, employeeID string) (*employee.BankInfo, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT bank_id, bank_name, account_title, account_number, branch_code, iban
		FROM employee_bank_details
		WHERE employee_id = $1
		ORDER BY is_primary DESC, created_at DESC
		LIMIT 1
	`

	var b employee.BankInfo
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&b.BankID, &b.BankName, &b.AccountTitle, &b.AccountNumber, &b.BranchCode, &b.IBAN,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bank info: %w", err)
	}

	return &b, nil
}
