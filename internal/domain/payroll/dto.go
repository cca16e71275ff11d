package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/optional"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PREVIEW DTOs ==========

type PreviewPayrollRequest struct {
	Month       int      `json:"month" validate:"required,min=1,max=12"`
	Year        int      `json:"year" validate:"required,min=2000,max=9999"`
	EmployeeIDs []string `json:"employee_ids,omitempty" validate:"omitempty,dive,uuid"` // Empty = all active employees
}

func (r *PreviewPayrollRequest) Validate() error {
	return validator.Struct(r)
}

// ========== CONFIRM DTOs ==========

// ConfirmDetail is a preview record sent back for persistence. BankInfo
// overrides the employee's bank snapshot: absent keeps the snapshot, null
// clears it.
type ConfirmDetail struct {
	Computation
	BankInfo optional.Field[employee.BankInfo] `json:"bank_info,omitzero"`
}

type ConfirmPayrollRequest struct {
	Month       int             `json:"month" validate:"required,min=1,max=12"`
	Year        int             `json:"year" validate:"required,min=2000,max=9999"`
	SubmittedBy string          `json:"-"`
	Details     []ConfirmDetail `json:"details" validate:"required,min=1"`
}

func (r *ConfirmPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.Struct(r); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, verrs...)
	}

	if validator.IsEmpty(r.SubmittedBy) {
		errs = append(errs, validator.ValidationError{Field: "submitted_by", Message: "Submitted By is required"})
	}

	seen := make(map[string]int, len(r.Details))
	for i, d := range r.Details {
		field := fmt.Sprintf("details[%d].employee_id", i)
		if validator.IsEmpty(d.EmployeeID) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "Employee Id is required"})
			continue
		}
		if !validator.IsValidUUID(d.EmployeeID) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "Employee Id must be a valid UUID"})
			continue
		}
		if first, dup := seen[d.EmployeeID]; dup {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicates details[%d]", first),
			})
			continue
		}
		seen[d.EmployeeID] = i
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeIDs returns the employees of the submitted details in order.
func (r *ConfirmPayrollRequest) EmployeeIDs() []string {
	ids := make([]string, 0, len(r.Details))
	for _, d := range r.Details {
		ids = append(ids, d.EmployeeID)
	}
	return ids
}

// ========== READ DTOs ==========

type PayrollHeaderResponse struct {
	ID            string          `json:"id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	GeneratedBy   string          `json:"generated_by"`
	EmployeeCount int             `json:"employee_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type PayrollDetailResponse struct {
	ID string `json:"id"`
	Computation
	BankInfo *employee.BankInfo `json:"bank_info"`
}

type PayrollWithDetailsResponse struct {
	PayrollHeaderResponse
	Details []PayrollDetailResponse `json:"details"`
}

type PayrollFilter struct {
	Month     *int    `json:"month,omitempty"`
	Year      *int    `json:"year,omitempty"`
	Status    *string `json:"status,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
	SortBy    string  `json:"sort_by"`
	SortOrder string  `json:"sort_order"`
}

var payrollSortColumns = []string{"created_at", "month", "year", "total_amount", "status"}

// Normalize fills paging defaults and validates sort and status values.
func (f *PayrollFilter) Normalize() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.SortBy == "" {
		f.SortBy = "created_at"
	}
	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}

	if !validator.IsInSlice(f.SortBy, payrollSortColumns) {
		errs = append(errs, validator.ValidationError{Field: "sort_by", Message: "unsupported sort column"})
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "must be 'asc' or 'desc'"})
	}
	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(PayrollStatusDraft), string(PayrollStatusConfirmed), string(PayrollStatusPaid),
	}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of draft, confirmed, paid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListPayrollResponse struct {
	Data       []PayrollHeaderResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

// ========== EVENTS ==========

const EventTypePayrollConfirmed = "payroll.confirmed"

// ConfirmedEvent is published after a payroll period is confirmed.
type ConfirmedEvent struct {
	PayrollID   string          `json:"payroll_id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	EmployeeIDs []string        `json:"employee_ids"`
	ConfirmedBy string          `json:"confirmed_by"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
}

func ToHeaderResponse(h PayrollHeader) PayrollHeaderResponse {
	return PayrollHeaderResponse{
		ID:            h.ID,
		Month:         h.Month,
		Year:          h.Year,
		TotalAmount:   h.TotalAmount,
		Status:        string(h.Status),
		GeneratedBy:   h.GeneratedBy,
		EmployeeCount: h.EmployeeCount,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

func ToDetailResponse(d PayrollDetail) PayrollDetailResponse {
	return PayrollDetailResponse{
		ID:          d.ID,
		Computation: d.Computation,
		BankInfo:    d.BankInfo,
	}
}
