package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const (
	contentTypeNDJSON = "application/x-ndjson"
	contentTypeXLSX   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type PayrollHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	InvalidateMasters(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== PREVIEW ==========

func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req payroll.PreviewPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), contentTypeNDJSON) {
		h.streamPreview(w, r, req)
		return
	}

	result, err := h.payrollService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// streamPreview writes one JSON record per line. Errors before the first
// record use the normal envelope; later ones end the stream with an error line.
func (h *payrollHandlerImpl) streamPreview(w http.ResponseWriter, r *http.Request, req payroll.PreviewPayrollRequest) {
	rc := http.NewResponseController(w)
	enc := json.NewEncoder(w)
	started := false

	err := h.payrollService.StreamPreview(r.Context(), req, func(c payroll.Computation) error {
		if !started {
			w.Header().Set("Content-Type", contentTypeNDJSON)
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if err := enc.Encode(c); err != nil {
			return err
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return err
		}
		return nil
	})
	if err == nil {
		return
	}
	if !started {
		response.HandleError(w, err)
		return
	}

	slog.ErrorContext(r.Context(), "payroll preview stream aborted", "error", err)
	_ = enc.Encode(map[string]string{"error": "preview aborted"})
}

// ========== CONFIRM ==========

func (h *payrollHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req payroll.ConfirmPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	req.SubmittedBy = userID

	result, err := h.payrollService.Confirm(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll confirmed", result)
}

// ========== READ ==========

func (h *payrollHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid payroll ID", nil)
		return
	}

	result, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, errs := parsePayrollFilter(r)
	if len(errs) > 0 {
		response.ValidationError(w, errs.ToMap())
		return
	}

	result, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid payroll ID", nil)
		return
	}

	body, err := h.payrollService.Export(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, contentTypeXLSX, fmt.Sprintf("payroll-%s.xlsx", id), body)
}

// ========== MASTERS ==========

func (h *payrollHandlerImpl) InvalidateMasters(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.InvalidateMasters(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Master data cache invalidated", nil)
}

func parsePayrollFilter(r *http.Request) (payroll.PayrollFilter, validator.ValidationErrors) {
	query := r.URL.Query()
	var filter payroll.PayrollFilter
	var errs validator.ValidationErrors

	intParam := func(name string) *int {
		raw := query.Get(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: name, Message: "must be a number"})
			return nil
		}
		return &v
	}

	filter.Month = intParam("month")
	filter.Year = intParam("year")
	if page := intParam("page"); page != nil {
		filter.Page = *page
	}
	if limit := intParam("limit"); limit != nil {
		filter.Limit = *limit
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	filter.SortBy = query.Get("sort_by")
	filter.SortOrder = query.Get("sort_order")

	return filter, errs
}
