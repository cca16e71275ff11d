package payroll

import "context"

type PayrollService interface {
	// Preview computes payroll for the period without persisting anything.
	Preview(ctx context.Context, req PreviewPayrollRequest) ([]Computation, error)
	// StreamPreview computes payroll chunk by chunk and hands each record to
	// emit in employee order.
	StreamPreview(ctx context.Context, req PreviewPayrollRequest, emit func(Computation) error) error
	Confirm(ctx context.Context, req ConfirmPayrollRequest) (PayrollHeaderResponse, error)
	GetByID(ctx context.Context, id string) (PayrollWithDetailsResponse, error)
	List(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	// Export renders a confirmed payroll as an XLSX workbook.
	Export(ctx context.Context, id string) ([]byte, error)
	InvalidateMasters(ctx context.Context) error
}
