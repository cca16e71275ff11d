package employee

import "context"

type EmployeeRepository interface {
	// GetActive returns active employees ordered by employee code. An empty ids
	// slice means every active employee.
	GetActive(ctx context.Context, ids []string) ([]Employee, error)
	GetIncrements(ctx context.Context, employeeID string) ([]Increment, error)
	// GetBankInfo returns nil when the employee has no bank details on file.
	GetBankInfo(ctx context.Context, employeeID string) (*BankInfo, error)
}
