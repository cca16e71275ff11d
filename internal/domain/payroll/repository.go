package payroll

import "context"

// MasterRepository reads company-wide master data. Results are stable within
// a run and safe to cache.
type MasterRepository interface {
	GetSalaryBreakupComponents(ctx context.Context) ([]SalaryBreakupComponent, error)
	GetActiveTaxSlabs(ctx context.Context) ([]TaxSlab, error)
	GetActiveEOBIRecords(ctx context.Context) ([]EOBIRecord, error)
	// GetActiveProvidentFund returns ErrProvidentFundNotFound when none is active.
	GetActiveProvidentFund(ctx context.Context) (ProvidentFund, error)
	GetInstitutionByID(ctx context.Context, id string) (SocialSecurityInstitution, error)
}

// AdjustmentRepository reads per-employee monthly additions and deductions.
type AdjustmentRepository interface {
	GetAllowances(ctx context.Context, employeeID string, month, year int) ([]Allowance, error)
	GetDeductions(ctx context.Context, employeeID string, month, year int) ([]Deduction, error)
	GetBonuses(ctx context.Context, employeeID string, month, year int) ([]Bonus, error)
	GetApprovedLoans(ctx context.Context, employeeID string) ([]LoanRequest, error)
	GetApprovedAdvances(ctx context.Context, employeeID string) ([]AdvanceSalary, error)
	GetApprovedRebates(ctx context.Context, employeeID string, monthYear string) ([]Rebate, error)
	// GetLatestSocialSecurityRegistration returns ErrRegistrationNotFound when
	// the employee has no active registration.
	GetLatestSocialSecurityRegistration(ctx context.Context, employeeID string) (SocialSecurityRegistration, error)
}

// PayrollRepository persists confirmed payroll headers and details.
type PayrollRepository interface {
	// LockPeriod serialises confirmations of one month for the rest of the
	// current transaction.
	LockPeriod(ctx context.Context, month, year int) error
	GetOrCreateHeader(ctx context.Context, month, year int, generatedBy string) (PayrollHeader, error)
	GetHeaderByID(ctx context.Context, id string) (PayrollHeader, error)
	ListHeaders(ctx context.Context, filter PayrollFilter) ([]PayrollHeader, int64, error)
	DeleteDetails(ctx context.Context, payrollID string, employeeIDs []string) error
	InsertDetails(ctx context.Context, details []PayrollDetail) error
	GetDetails(ctx context.Context, payrollID string) ([]PayrollDetail, error)
	// FinalizeHeader recomputes the header total from its details and sets status.
	FinalizeHeader(ctx context.Context, payrollID string, status PayrollStatus) (PayrollHeader, error)
}

// TxManager runs fn inside a transaction carried by ctx.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MasterCacheInvalidator drops cached master data.
type MasterCacheInvalidator interface {
	InvalidateMasters(ctx context.Context) error
}
