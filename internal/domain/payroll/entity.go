package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// SalaryBreakupComponent - master line that splits the package by percentage
type SalaryBreakupComponent struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Percentage        *decimal.Decimal `json:"percentage,omitempty"`
	IsTaxableOverride *bool            `json:"is_taxable_override,omitempty"`
	Metadata          []byte           `json:"metadata,omitempty"`
	SortOrder         int              `json:"sort_order"`
	IsActive          bool             `json:"is_active"`
}

// TaxSlab - annual income bracket, Min and Max inclusive
type TaxSlab struct {
	ID          string          `json:"id"`
	MinAmount   decimal.Decimal `json:"min_amount"`
	MaxAmount   decimal.Decimal `json:"max_amount"`
	Rate        decimal.Decimal `json:"rate"`
	FixedAmount decimal.Decimal `json:"fixed_amount"`
	IsActive    bool            `json:"is_active"`
}

// Rebate - approved reduction of annual taxable income for one month
type Rebate struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	MonthYear  string          `json:"month_year"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
}

// EOBIRecord - old-age benefit contribution for a labelled month
type EOBIRecord struct {
	ID                   string          `json:"id"`
	YearMonth            string          `json:"year_month"`
	EmployeeContribution decimal.Decimal `json:"employee_contribution"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
	IsActive             bool            `json:"is_active"`
}

// ProvidentFund - single active contribution percentage
type ProvidentFund struct {
	ID         string          `json:"id"`
	Percentage decimal.Decimal `json:"percentage"`
	IsActive   bool            `json:"is_active"`
}

type SocialSecurityInstitution struct {
	ID               string
	Name             string
	ContributionRate decimal.Decimal
	IsActive         bool
}

type SocialSecurityRegistration struct {
	ID               string
	EmployeeID       string
	InstitutionID    string
	RegisteredAt     time.Time
	IsActive         bool
	ContributionRate decimal.Decimal
}

type PaymentMethod string

const (
	PaymentMethodWithSalary PaymentMethod = "with_salary"
	PaymentMethodSeparately PaymentMethod = "separately"
)

const StatusApproved = "approved"

// Allowance - monthly ad-hoc addition
type Allowance struct {
	ID            string
	EmployeeID    string
	Name          string
	Month         int
	Year          int
	Amount        decimal.Decimal
	IsTaxable     bool
	PaymentMethod PaymentMethod
	Status        string
}

// Deduction - monthly ad-hoc deduction
type Deduction struct {
	ID         string
	EmployeeID string
	Name       string
	Month      int
	Year       int
	Amount     decimal.Decimal
	Status     string
}

// Bonus - monthly ad-hoc bonus
type Bonus struct {
	ID            string
	EmployeeID    string
	Name          string
	Month         int
	Year          int
	Amount        decimal.Decimal
	IsTaxable     bool
	PaymentMethod PaymentMethod
	Status        string
}

// LoanRequest - repaid in equal installments from the start month
type LoanRequest struct {
	ID                   string
	EmployeeID           string
	Amount               decimal.Decimal
	NumberOfInstallments int
	RepaymentStartMonth  int
	RepaymentStartYear   int
	Status               string
}

// AdvanceSalary - recovered in full in its deduction month. The month is
// stored either as DeductionMonth/DeductionYear or as a combined "YYYY-MM".
type AdvanceSalary struct {
	ID                 string
	EmployeeID         string
	Amount             decimal.Decimal
	DeductionMonth     *string
	DeductionYear      *int
	DeductionMonthYear *string
	Status             string
}

type PayrollStatus string

const (
	PayrollStatusDraft     PayrollStatus = "draft"
	PayrollStatusConfirmed PayrollStatus = "confirmed"
	PayrollStatusPaid      PayrollStatus = "paid"
)

// Confirmable reports whether details may still be replaced.
func (s PayrollStatus) Confirmable() bool {
	return s == PayrollStatusDraft || s == PayrollStatusConfirmed
}

// PayrollHeader - one per month/year
type PayrollHeader struct {
	ID            string
	Month         int
	Year          int
	TotalAmount   decimal.Decimal
	Status        PayrollStatus
	GeneratedBy   string
	EmployeeCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PayrollDetail - persisted computation of one employee in a header
type PayrollDetail struct {
	ID        string
	PayrollID string
	Computation
	BankInfo  *employee.BankInfo
	CreatedAt time.Time
}
