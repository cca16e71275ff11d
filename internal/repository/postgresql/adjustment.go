package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) payroll.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

// ========== MONTHLY ADJUSTMENTS ==========

func (r *adjustmentRepository) GetAllowances(ctx context.Context, employeeID string, month, year int) ([]payroll.Allowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, name, month, year, amount, is_taxable, payment_method, status
		FROM allowances
		WHERE employee_id = $1 AND month = $2 AND year = $3
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowances: %w", err)
	}
	defer rows.Close()

	var allowances []payroll.Allowance
	for rows.Next() {
		var a payroll.Allowance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Name, &a.Month, &a.Year, &a.Amount, &a.IsTaxable, &a.PaymentMethod, &a.Status); err != nil {
			return nil, fmt.Errorf("failed to scan allowance: %w", err)
		}
		allowances = append(allowances, a)
	}

	return allowances, rows.Err()
}

func (r *adjustmentRepository) GetDeductions(ctx context.Context, employeeID string, month, year int) ([]payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, name, month, year, amount, status
		FROM deductions
		WHERE employee_id = $1 AND month = $2 AND year = $3
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	defer rows.Close()

	var deductions []payroll.Deduction
	for rows.Next() {
		var d payroll.Deduction
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Name, &d.Month, &d.Year, &d.Amount, &d.Status); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		deductions = append(deductions, d)
	}

	return deductions, rows.Err()
}

func (r *adjustmentRepository) GetBonuses(ctx context.Context, employeeID string, month, year int) ([]payroll.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, name, month, year, amount, is_taxable, payment_method, status
		FROM bonuses
		WHERE employee_id = $1 AND month = $2 AND year = $3
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []payroll.Bonus
	for rows.Next() {
		var b payroll.Bonus
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.Name, &b.Month, &b.Year, &b.Amount, &b.IsTaxable, &b.PaymentMethod, &b.Status); err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		bonuses = append(bonuses, b)
	}

	return bonuses, rows.Err()
}

// ========== RECOVERIES ==========

func (r *adjustmentRepository) GetApprovedLoans(ctx context.Context, employeeID string) ([]payroll.LoanRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount, number_of_installments,
			   repayment_start_month, repayment_start_year, status
		FROM loan_requests
		WHERE employee_id = $1 AND status = 'approved'
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []payroll.LoanRequest
	for rows.Next() {
		var l payroll.LoanRequest
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.Amount, &l.NumberOfInstallments,
			&l.RepaymentStartMonth, &l.RepaymentStartYear, &l.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}

	return loans, rows.Err()
}

func (r *adjustmentRepository) GetApprovedAdvances(ctx context.Context, employeeID string) ([]payroll.AdvanceSalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, amount, deduction_month, deduction_year, deduction_month_year, status
		FROM advance_salaries
		WHERE employee_id = $1 AND status = 'approved'
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []payroll.AdvanceSalary
	for rows.Next() {
		var a payroll.AdvanceSalary
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Amount, &a.DeductionMonth, &a.DeductionYear, &a.DeductionMonthYear, &a.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}

	return advances, rows.Err()
}

func (r *adjustmentRepository) GetApprovedRebates(ctx context.Context, employeeID string, monthYear string) ([]payroll.Rebate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, name, month_year, amount, status
		FROM rebates
		WHERE employee_id = $1 AND month_year = $2 AND status = 'approved'
	`

	rows, err := q.Query(ctx, query, employeeID, monthYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list rebates: %w", err)
	}
	defer rows.Close()

	var rebates []payroll.Rebate
	for rows.Next() {
		var rb payroll.Rebate
		if err := rows.Scan(&rb.ID, &rb.EmployeeID, &rb.Name, &rb.MonthYear, &rb.Amount, &rb.Status); err != nil {
			return nil, fmt.Errorf("failed to scan rebate: %w", err)
		}
		rebates = append(rebates, rb)
	}

	return rebates, rows.Err()
}

func (r *adjustmentRepository) GetLatestSocialSecurityRegistration(ctx context.Context, employeeID string) (payroll.SocialSecurityRegistration, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT reg.id, reg.employee_id, reg.institution_id, reg.registered_at, reg.is_active,
			   inst.contribution_rate
		FROM social_security_registrations reg
		JOIN social_security_institutions inst ON inst.id = reg.institution_id
		WHERE reg.employee_id = $1 AND reg.is_active = true
		ORDER BY reg.registered_at DESC
		LIMIT 1
	`

	var reg payroll.SocialSecurityRegistration
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&reg.ID, &reg.EmployeeID, &reg.InstitutionID, &reg.RegisteredAt, &reg.IsActive, &reg.ContributionRate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SocialSecurityRegistration{}, payroll.ErrRegistrationNotFound
		}
		return payroll.SocialSecurityRegistration{}, fmt.Errorf("failed to get social security registration: %w", err)
	}

	return reg, nil
}
