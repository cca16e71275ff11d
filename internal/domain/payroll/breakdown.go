package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Computation - the full payroll record of one employee for one period.
// Preview returns it, confirm persists it as a detail.
type Computation struct {
	EmployeeID       string          `json:"employee_id"`
	EmployeeCode     string          `json:"employee_code"`
	EmployeeName     string          `json:"employee_name"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	BasePackage      decimal.Decimal `json:"base_package"`
	EffectivePackage decimal.Decimal `json:"effective_package"`
	PackageChanges   []PackageChange `json:"package_changes"`
	LeavePolicyName  *string         `json:"leave_policy_name,omitempty"`

	SalaryBreakup []BreakupLine   `json:"salary_breakup"`
	BasicSalary   decimal.Decimal `json:"basic_salary"`

	Allowances        decimal.Decimal  `json:"allowances"`
	AllowanceItems    []AdjustmentItem `json:"allowance_items"`
	Bonuses           decimal.Decimal  `json:"bonuses"`
	BonusItems        []AdjustmentItem `json:"bonus_items"`
	LeaveEncashment   decimal.Decimal  `json:"leave_encashment"`
	OvertimeAmount    decimal.Decimal  `json:"overtime_amount"`
	OvertimeBreakdown []OvertimeLine   `json:"overtime_breakdown"`
	GrossSalary       decimal.Decimal  `json:"gross_salary"`

	AttendanceDeduction    decimal.Decimal     `json:"attendance_deduction"`
	AttendanceBreakdown    AttendanceBreakdown `json:"attendance_breakdown"`
	LoanDeduction          decimal.Decimal     `json:"loan_deduction"`
	LoanItems              []AdjustmentItem    `json:"loan_items"`
	AdvanceDeduction       decimal.Decimal     `json:"advance_deduction"`
	AdvanceItems           []AdjustmentItem    `json:"advance_items"`
	EOBIDeduction          decimal.Decimal     `json:"eobi_deduction"`
	ProvidentFundDeduction decimal.Decimal     `json:"provident_fund_deduction"`
	TaxDeduction           decimal.Decimal     `json:"tax_deduction"`
	TaxBreakdown           TaxBreakdown        `json:"tax_breakdown"`
	AdhocDeductions        decimal.Decimal     `json:"adhoc_deductions"`
	DeductionItems         []AdjustmentItem    `json:"deduction_items"`
	TotalDeductions        decimal.Decimal     `json:"total_deductions"`

	// Reported only, never subtracted from net.
	SocialSecurityContribution decimal.Decimal `json:"social_security_contribution"`

	NetSalary decimal.Decimal `json:"net_salary"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// PackageChange - audit entry for an increment applied inside the period
type PackageChange struct {
	IncrementID string          `json:"increment_id"`
	Date        time.Time       `json:"date"`
	OldPackage  decimal.Decimal `json:"old_package"`
	NewPackage  decimal.Decimal `json:"new_package"`
	DaysBefore  int             `json:"days_before"`
}

// EffectivePackage - day-weighted package for a period
type EffectivePackage struct {
	Amount  decimal.Decimal
	Changes []PackageChange
}

type BreakupLine struct {
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
	IsTaxable  bool            `json:"is_taxable"`
}

type AdjustmentItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	IsTaxable bool            `json:"is_taxable,omitempty"`
}

type AttendanceItem struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type AttendanceBreakdown struct {
	PerDaySalary decimal.Decimal `json:"per_day_salary"`
	Absent       AttendanceItem  `json:"absent"`
	Late         AttendanceItem  `json:"late"`
	HalfDay      AttendanceItem  `json:"half_day"`
	ShortDay     AttendanceItem  `json:"short_day"`
	// Leave counts period days covered by approved leave. Its amount is always zero.
	Leave AttendanceItem `json:"leave"`
}

// AttendanceDeduction - total penalty plus its breakdown
type AttendanceDeduction struct {
	Total     decimal.Decimal
	Breakdown AttendanceBreakdown
}

type OvertimeSource string

const (
	OvertimeSourceRequest    OvertimeSource = "overtime_request"
	OvertimeSourceAttendance OvertimeSource = "attendance"
)

type DayType string

const (
	DayTypeRegular   DayType = "regular"
	DayTypeWeekend   DayType = "weekend"
	DayTypeHoliday   DayType = "holiday"
	DayTypeWeeklyOff DayType = "weekly_off"
)

// IsOff reports whether overtime on this day is paid at the holiday multiplier.
func (d DayType) IsOff() bool {
	return d != DayTypeRegular
}

type OvertimeLine struct {
	Date         time.Time       `json:"date"`
	Source       OvertimeSource  `json:"source"`
	Type         DayType         `json:"type"`
	WeekdayHours decimal.Decimal `json:"weekday_hours"`
	HolidayHours decimal.Decimal `json:"holiday_hours"`
	Amount       decimal.Decimal `json:"amount"`
}

type Overtime struct {
	HourlyRate decimal.Decimal
	Amount     decimal.Decimal
	Lines      []OvertimeLine
}

type TaxableComponent struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// TaxBreakdown - audit trail of the monthly tax calculation
type TaxBreakdown struct {
	EffectivePackage     decimal.Decimal    `json:"effective_package"`
	TaxableComponents    []TaxableComponent `json:"taxable_components"`
	MonthlyTaxableAmount decimal.Decimal    `json:"monthly_taxable_amount"`
	AnnualTaxableAmount  decimal.Decimal    `json:"annual_taxable_amount"`
	Rebates              []AdjustmentItem   `json:"rebates"`
	TotalRebate          decimal.Decimal    `json:"total_rebate"`
	TaxableIncome        decimal.Decimal    `json:"taxable_income"`
	Slab                 *TaxSlab           `json:"slab,omitempty"`
	FixedTax             decimal.Decimal    `json:"fixed_tax"`
	PercentageTax        decimal.Decimal    `json:"percentage_tax"`
	AnnualTax            decimal.Decimal    `json:"annual_tax"`
	MonthlyTax           decimal.Decimal    `json:"monthly_tax"`
}
