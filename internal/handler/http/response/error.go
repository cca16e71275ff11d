package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrNoActiveEmployees):
		BadRequest(w, "No active employees found for this period", nil)
	case errors.Is(err, payroll.ErrDuplicateEmployee):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrPayrollNotConfirmable):
		Conflict(w, "Payroll for this period can no longer be confirmed")
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")

	case errors.Is(err, payroll.ErrConfirmFailed):
		slog.Error("payroll confirmation failed", "error", err)
		InternalServerError(w, "Failed to confirm payroll")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
