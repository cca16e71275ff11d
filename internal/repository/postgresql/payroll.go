package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// payrollLockNamespace keeps period locks apart from other advisory locks.
const payrollLockNamespace = 7301

const pgUniqueViolation = "23505"

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== HEADERS ==========

func (r *payrollRepository) LockPeriod(ctx context.Context, month, year int) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, "SELECT pg_advisory_xact_lock($1, $2)", payrollLockNamespace, year*100+month); err != nil {
		return fmt.Errorf("failed to lock payroll period: %w", err)
	}
	return nil
}

func (r *payrollRepository) GetOrCreateHeader(ctx context.Context, month, year int, generatedBy string) (payroll.PayrollHeader, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (month, year, status, generated_by)
		VALUES ($1, $2, 'draft', $3)
		ON CONFLICT (month, year) DO UPDATE SET month = EXCLUDED.month
		RETURNING id, month, year, total_amount, status, generated_by, created_at, updated_at
	`

	var h payroll.PayrollHeader
	err := q.QueryRow(ctx, query, month, year, generatedBy).Scan(
		&h.ID, &h.Month, &h.Year, &h.TotalAmount, &h.Status, &h.GeneratedBy, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollHeader{}, fmt.Errorf("failed to get or create payroll header: %w", err)
	}

	return h, nil
}

func (r *payrollRepository) GetHeaderByID(ctx context.Context, id string) (payroll.PayrollHeader, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.month, p.year, p.total_amount, p.status, p.generated_by,
			   (SELECT COUNT(*) FROM payroll_details d WHERE d.payroll_id = p.id),
			   p.created_at, p.updated_at
		FROM payrolls p
		WHERE p.id = $1
	`

	var h payroll.PayrollHeader
	err := q.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.Month, &h.Year, &h.TotalAmount, &h.Status, &h.GeneratedBy, &h.EmployeeCount, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollHeader{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollHeader{}, fmt.Errorf("failed to get payroll header: %w", err)
	}

	return h, nil
}

func (r *payrollRepository) ListHeaders(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollHeader, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := sq.And{}
	if filter.Month != nil {
		where = append(where, sq.Eq{"p.month": *filter.Month})
	}
	if filter.Year != nil {
		where = append(where, sq.Eq{"p.year": *filter.Year})
	}
	if filter.Status != nil {
		where = append(where, sq.Eq{"p.status": *filter.Status})
	}

	countQuery, countArgs, err := sq.Select("COUNT(*)").
		From("payrolls p").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build payroll count query: %w", err)
	}

	var total int64
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	// SortBy and SortOrder are whitelisted by PayrollFilter.Normalize.
	listQuery, listArgs, err := sq.Select(
		"p.id",
		"p.month",
		"p.year",
		"p.total_amount",
		"p.status",
		"p.generated_by",
		"(SELECT COUNT(*) FROM payroll_details d WHERE d.payroll_id = p.id)",
		"p.created_at",
		"p.updated_at",
	).
		From("payrolls p").
		Where(where).
		OrderBy(fmt.Sprintf("p.%s %s", filter.SortBy, filter.SortOrder)).
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build payroll list query: %w", err)
	}

	rows, err := q.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var headers []payroll.PayrollHeader
	for rows.Next() {
		var h payroll.PayrollHeader
		if err := rows.Scan(
			&h.ID, &h.Month, &h.Year, &h.TotalAmount, &h.Status, &h.GeneratedBy, &h.EmployeeCount, &h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll header: %w", err)
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payrolls: %w", err)
	}

	return headers, total, nil
}

func (r *payrollRepository) FinalizeHeader(ctx context.Context, payrollID string, status payroll.PayrollStatus) (payroll.PayrollHeader, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls p
		SET total_amount = COALESCE((SELECT SUM(d.net_salary) FROM payroll_details d WHERE d.payroll_id = p.id), 0),
			status = $2,
			updated_at = NOW()
		WHERE p.id = $1
		RETURNING p.id, p.month, p.year, p.total_amount, p.status, p.generated_by,
			(SELECT COUNT(*) FROM payroll_details d WHERE d.payroll_id = p.id),
			p.created_at, p.updated_at
	`

	var h payroll.PayrollHeader
	err := q.QueryRow(ctx, query, payrollID, status).Scan(
		&h.ID, &h.Month, &h.Year, &h.TotalAmount, &h.Status, &h.GeneratedBy, &h.EmployeeCount, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollHeader{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollHeader{}, fmt.Errorf("failed to finalize payroll header: %w", err)
	}

	return h, nil
}

// ========== DETAILS ==========

func (r *payrollRepository) DeleteDetails(ctx context.Context, payrollID string, employeeIDs []string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_details WHERE payroll_id = $1 AND employee_id = ANY($2::uuid[])`

	if _, err := q.Exec(ctx, query, payrollID, employeeIDs); err != nil {
		return fmt.Errorf("failed to delete payroll details: %w", err)
	}
	return nil
}

func (r *payrollRepository) InsertDetails(ctx context.Context, details []payroll.PayrollDetail) error {
	if len(details) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_details (
			id, payroll_id, employee_id, employee_code, employee_name,
			effective_package, gross_salary, total_deductions, net_salary,
			computation, bank_info
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	batch := &pgx.Batch{}
	for _, d := range details {
		computation, err := json.Marshal(d.Computation)
		if err != nil {
			return fmt.Errorf("failed to encode payroll detail for employee %s: %w", d.EmployeeID, err)
		}
		var bankInfo []byte
		if d.BankInfo != nil {
			if bankInfo, err = json.Marshal(d.BankInfo); err != nil {
				return fmt.Errorf("failed to encode bank info for employee %s: %w", d.EmployeeID, err)
			}
		}

		batch.Queue(query,
			d.ID, d.PayrollID, d.EmployeeID, d.EmployeeCode, d.EmployeeName,
			d.EffectivePackage, d.GrossSalary, d.TotalDeductions, d.NetSalary,
			computation, bankInfo,
		)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	for _, d := range details {
		if _, err := br.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return fmt.Errorf("employee %s: %w", d.EmployeeID, payroll.ErrDuplicateEmployee)
			}
			return fmt.Errorf("failed to insert payroll detail for employee %s: %w", d.EmployeeID, err)
		}
	}

	return br.Close()
}

func (r *payrollRepository) GetDetails(ctx context.Context, payrollID string) ([]payroll.PayrollDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, computation, bank_info, created_at
		FROM payroll_details
		WHERE payroll_id = $1
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll details: %w", err)
	}
	defer rows.Close()

	var details []payroll.PayrollDetail
	for rows.Next() {
		var d payroll.PayrollDetail
		var computation, bankInfo []byte
		if err := rows.Scan(&d.ID, &d.PayrollID, &computation, &bankInfo, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payroll detail: %w", err)
		}
		if err := json.Unmarshal(computation, &d.Computation); err != nil {
			return nil, fmt.Errorf("failed to decode payroll detail %s: %w", d.ID, err)
		}
		if len(bankInfo) > 0 {
			d.BankInfo = &employee.BankInfo{}
			if err := json.Unmarshal(bankInfo, d.BankInfo); err != nil {
				return nil, fmt.Errorf("failed to decode bank info of payroll detail %s: %w", d.ID, err)
			}
		}
		details = append(details, d)
	}

	return details, rows.Err()
}
