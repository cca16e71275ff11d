package payroll

import "errors"

var (
	ErrInvalidPeriod         = errors.New("invalid payroll period")
	ErrNoActiveEmployees     = errors.New("no active employees found for payroll")
	ErrPayrollNotFound       = errors.New("payroll not found")
	ErrPayrollNotConfirmable = errors.New("payroll period is already paid and cannot be confirmed")
	ErrDuplicateEmployee     = errors.New("employee appears more than once in payroll details")
	ErrConfirmFailed         = errors.New("failed to confirm payroll")
	ErrProvidentFundNotFound = errors.New("no active provident fund configured")
	ErrInstitutionNotFound   = errors.New("social security institution not found")
	ErrRegistrationNotFound  = errors.New("social security registration not found")
)
