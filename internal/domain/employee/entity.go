package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                          string
	EmployeeCode                string
	FullName                    string
	Status                      EmploymentStatus
	BasePackage                 decimal.Decimal
	IsOvertimeEligible          bool
	IsEOBIEnabled               bool
	IsProvidentFundEnabled      bool
	WorkingHoursPolicyID        *string
	LeavePolicyID               *string
	SocialSecurityInstitutionID *string
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusInactive   EmploymentStatus = "inactive"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

type IncrementKind string

const (
	IncrementKindIncrease IncrementKind = "increase"
	IncrementKindDecrease IncrementKind = "decrease"
)

type IncrementMethod string

const (
	IncrementMethodAmount     IncrementMethod = "amount"
	IncrementMethodPercentage IncrementMethod = "percentage"
)

// Increment - a package change effective from EffectiveDate
type Increment struct {
	ID               string
	EmployeeID       string
	EffectiveDate    time.Time
	NewPackage       decimal.Decimal
	Kind             IncrementKind
	Method           IncrementMethod
	ChangeAmount     *decimal.Decimal
	ChangePercentage *decimal.Decimal
	CreatedAt        time.Time
}

// BankInfo is snapshotted onto each confirmed payroll detail.
type BankInfo struct {
	BankID        *string `json:"bank_id,omitempty"`
	BankName      string  `json:"bank_name"`
	AccountTitle  string  `json:"account_title"`
	AccountNumber string  `json:"account_number"`
	BranchCode    *string `json:"branch_code,omitempty"`
	IBAN          *string `json:"iban,omitempty"`
}
