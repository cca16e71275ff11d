package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type masterRepository struct {
	db *database.DB
}

func NewMasterRepository(db *database.DB) payroll.MasterRepository {
	return &masterRepository{db: db}
}

func (r *masterRepository) GetSalaryBreakupComponents(ctx context.Context) ([]payroll.SalaryBreakupComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, percentage, is_taxable_override, metadata, sort_order, is_active
		FROM salary_breakup_components
		WHERE is_active = true
		ORDER BY sort_order, name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary breakup components: %w", err)
	}
	defer rows.Close()

	var components []payroll.SalaryBreakupComponent
	for rows.Next() {
		var c payroll.SalaryBreakupComponent
		if err := rows.Scan(&c.ID, &c.Name, &c.Percentage, &c.IsTaxableOverride, &c.Metadata, &c.SortOrder, &c.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan salary breakup component: %w", err)
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

func (r *masterRepository) GetActiveTaxSlabs(ctx context.Context) ([]payroll.TaxSlab, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, min_amount, max_amount, rate, fixed_amount, is_active
		FROM tax_slabs
		WHERE is_active = true
		ORDER BY min_amount
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax slabs: %w", err)
	}
	defer rows.Close()

	var slabs []payroll.TaxSlab
	for rows.Next() {
		var s payroll.TaxSlab
		if err := rows.Scan(&s.ID, &s.MinAmount, &s.MaxAmount, &s.Rate, &s.FixedAmount, &s.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan tax slab: %w", err)
		}
		slabs = append(slabs, s)
	}

	return slabs, rows.Err()
}

func (r *masterRepository) GetActiveEOBIRecords(ctx context.Context) ([]payroll.EOBIRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, year_month, employee_contribution, employer_contribution, is_active
		FROM eobi_records
		WHERE is_active = true
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list EOBI records: %w", err)
	}
	defer rows.Close()

	var records []payroll.EOBIRecord
	for rows.Next() {
		var e payroll.EOBIRecord
		if err := rows.Scan(&e.ID, &e.YearMonth, &e.EmployeeContribution, &e.EmployerContribution, &e.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan EOBI record: %w", err)
		}
		records = append(records, e)
	}

	return records, rows.Err()
}

func (r *masterRepository) GetActiveProvidentFund(ctx context.Context) (payroll.ProvidentFund, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, percentage, is_active
		FROM provident_funds
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT 1
	`

	var pf payroll.ProvidentFund
	err := q.QueryRow(ctx, query).Scan(&pf.ID, &pf.Percentage, &pf.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ProvidentFund{}, payroll.ErrProvidentFundNotFound
		}
		return payroll.ProvidentFund{}, fmt.Errorf("failed to get provident fund: %w", err)
	}

	return pf, nil
}

func (r *masterRepository) GetInstitutionByID(ctx context.Context, id string) (payroll.SocialSecurityInstitution, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, contribution_rate, is_active
		FROM social_security_institutions
		WHERE id = $1 AND is_active = true
	`

	var inst payroll.SocialSecurityInstitution
	err := q.QueryRow(ctx, query, id).Scan(&inst.ID, &inst.Name, &inst.ContributionRate, &inst.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SocialSecurityInstitution{}, payroll.ErrInstitutionNotFound
		}
		return payroll.SocialSecurityInstitution{}, fmt.Errorf("failed to get social security institution: %w", err)
	}

	return inst, nil
}
