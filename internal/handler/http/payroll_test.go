package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	handlerTestUserID = "0192f0a4-7c1e-7b4a-9d2e-1a2b3c4d5e6f"
	handlerTestID     = "0192f0a4-7c1e-7b4a-9d2e-aaaaaaaaaaaa"
)

type fakePayrollService struct {
	computations []payroll.Computation
	streamErr    error
	confirmReq   payroll.ConfirmPayrollRequest
	confirmErr   error
	getErr       error
	listFilter   payroll.PayrollFilter
	invalidated  bool
}

func (f *fakePayrollService) Preview(ctx context.Context, req payroll.PreviewPayrollRequest) ([]payroll.Computation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return f.computations, nil
}

func (f *fakePayrollService) StreamPreview(ctx context.Context, req payroll.PreviewPayrollRequest, emit func(payroll.Computation) error) error {
	for _, c := range f.computations {
		if err := emit(c); err != nil {
			return err
		}
	}
	return f.streamErr
}

func (f *fakePayrollService) Confirm(ctx context.Context, req payroll.ConfirmPayrollRequest) (payroll.PayrollHeaderResponse, error) {
	f.confirmReq = req
	if f.confirmErr != nil {
		return payroll.PayrollHeaderResponse{}, f.confirmErr
	}
	return payroll.PayrollHeaderResponse{ID: handlerTestID, Month: req.Month, Year: req.Year, Status: "confirmed"}, nil
}

func (f *fakePayrollService) GetByID(ctx context.Context, id string) (payroll.PayrollWithDetailsResponse, error) {
	if f.getErr != nil {
		return payroll.PayrollWithDetailsResponse{}, f.getErr
	}
	return payroll.PayrollWithDetailsResponse{PayrollHeaderResponse: payroll.PayrollHeaderResponse{ID: id}}, nil
}

func (f *fakePayrollService) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	f.listFilter = filter
	return payroll.ListPayrollResponse{
		Data:       []payroll.PayrollHeaderResponse{{ID: handlerTestID}},
		TotalCount: 45,
		Page:       2,
		Limit:      20,
	}, nil
}

func (f *fakePayrollService) Export(ctx context.Context, id string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return []byte("xlsx"), nil
}

func (f *fakePayrollService) InvalidateMasters(ctx context.Context) error {
	f.invalidated = true
	return nil
}

func newTestRouter(t *testing.T, svc *fakePayrollService) (http.Handler, string) {
	t.Helper()
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	token, _, err := jwtService.GenerateAccessToken(handlerTestUserID, "payroll")
	require.NoError(t, err)

	router := NewRouter(RouterOptions{}, jwtService, NewPayrollHandler(svc))
	return router, token
}

func doRequest(router http.Handler, method, path, token string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPayrollHandler_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t, &fakePayrollService{})

	rec := doRequest(router, http.MethodGet, "/api/v1/payrolls", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPayrollHandler_RejectsOtherRoles(t *testing.T) {
	svc := &fakePayrollService{}
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	token, _, err := jwtService.GenerateAccessToken(handlerTestUserID, "employee")
	require.NoError(t, err)
	router := NewRouter(RouterOptions{}, jwtService, NewPayrollHandler(svc))

	rec := doRequest(router, http.MethodGet, "/api/v1/payrolls", token, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPayrollHandler_Preview(t *testing.T) {
	svc := &fakePayrollService{computations: []payroll.Computation{
		{EmployeeID: "emp-1", NetSalary: decimal.NewFromInt(60000)},
	}}
	router, token := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/payrolls/preview", token,
		map[string]any{"month": 3, "year": 2024}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "emp-1", data[0].(map[string]any)["employee_id"])
}

func TestPayrollHandler_PreviewValidation(t *testing.T) {
	router, token := newTestRouter(t, &fakePayrollService{})

	rec := doRequest(router, http.MethodPost, "/api/v1/payrolls/preview", token,
		map[string]any{"month": 13, "year": 2024}, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeEnvelope(t, rec)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
}

func TestPayrollHandler_PreviewStream(t *testing.T) {
	svc := &fakePayrollService{computations: []payroll.Computation{
		{EmployeeID: "emp-1"},
		{EmployeeID: "emp-2"},
	}}
	router, token := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/payrolls/preview", token,
		map[string]any{"month": 3, "year": 2024},
		map[string]string{"Accept": contentTypeNDJSON})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeNDJSON, rec.Header().Get("Content-Type"))

	var ids []string
	scanner := bufio.NewScanner(rec.Body)
	for scanner.Scan() {
		var c payroll.Computation
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &c))
		ids = append(ids, c.EmployeeID)
	}
	assert.Equal(t, []string{"emp-1", "emp-2"}, ids)
}

func TestPayrollHandler_PreviewStreamAborted(t *testing.T) {
	svc := &fakePayrollService{
		computations: []payroll.Computation{{EmployeeID: "emp-1"}},
		streamErr:    errors.New("database gone"),
	}
	router, token := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/payrolls/preview", token,
		map[string]any{"month": 3, "year": 2024},
		map[string]string{"Accept": contentTypeNDJSON})

	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"error":"preview aborted"}`, lines[1])
}

func TestPayrollHandler_PreviewStreamFailsBeforeFirstRecord(t *testing.T) {
	svc := &fakePayrollService{streamErr: payroll.ErrNoActiveEmployees}
	router, token := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/payrolls/preview", token,
		map[string]any{"month": 3, "year": 2024},
		map[string]string{"Accept": contentTypeNDJSON})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestPayrollHandler_Confirm(t *testing.T) {
	svc := &fakePayrollService{}
	router, token := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/payrolls/confirm", token, map[string]any{
		"month":   3,
		"year":    2024,
		"details": []map[string]any{{"employee_id": "0192f0a4-7c1e-7b4a-9d2e-00000000000a", "bank_info": nil}},
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handlerTestUserID, svc.confirmReq.SubmittedBy)
	require.Len(t, svc.confirmReq.Details, 1)
	assert.True(t, svc.confirmReq.Details[0].BankInfo.Set)
	assert.True(t, svc.confirmReq.Details[0].BankInfo.Null)
}

func TestPayrollHandler_ConfirmErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", validator.ValidationErrors{{Field: "details", Message: "Details is required"}}, http.StatusUnprocessableEntity},
		{"paid period", payroll.ErrPayrollNotConfirmable, http.StatusConflict},
		{"duplicate employee", payroll.ErrDuplicateEmployee, http.StatusBadRequest},
		{"storage failure", payroll.ErrConfirmFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, token := newTestRouter(t, &fakePayrollService{confirmErr: tt.err})

			rec := doRequest(router, http.MethodPost, "/api/v1/payrolls/confirm", token,
				map[string]any{"month": 3, "year": 2024}, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPayrollHandler_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, token := newTestRouter(t, &fakePayrollService{})

		rec := doRequest(router, http.MethodGet, "/api/v1/payrolls/"+handlerTestID, token, nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, handlerTestID, data["id"])
	})

	t.Run("not found", func(t *testing.T) {
		router, token := newTestRouter(t, &fakePayrollService{getErr: payroll.ErrPayrollNotFound})

		rec := doRequest(router, http.MethodGet, "/api/v1/payrolls/"+handlerTestID, token, nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		router, token := newTestRouter(t, &fakePayrollService{})

		rec := doRequest(router, http.MethodGet, "/api/v1/payrolls/not-a-uuid", token, nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPayrollHandler_List(t *testing.T) {
	svc := &fakePayrollService{}
	router, token := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodGet, "/api/v1/payrolls?month=3&year=2024&page=2&status=confirmed", token, nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listFilter.Month)
	assert.Equal(t, 3, *svc.listFilter.Month)
	assert.Equal(t, 2, svc.listFilter.Page)
	assert.Equal(t, "confirmed", *svc.listFilter.Status)

	meta := decodeEnvelope(t, rec)["meta"].(map[string]any)
	assert.Equal(t, float64(45), meta["total_items"])
	assert.Equal(t, float64(3), meta["total_pages"])
}

func TestPayrollHandler_ListBadQuery(t *testing.T) {
	router, token := newTestRouter(t, &fakePayrollService{})

	rec := doRequest(router, http.MethodGet, "/api/v1/payrolls?month=march", token, nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPayrollHandler_Export(t *testing.T) {
	router, token := newTestRouter(t, &fakePayrollService{})

	rec := doRequest(router, http.MethodGet, "/api/v1/payrolls/"+handlerTestID+"/export", token, nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll-"+handlerTestID+".xlsx")
	assert.Equal(t, "xlsx", rec.Body.String())
}

func TestPayrollHandler_InvalidateMasters(t *testing.T) {
	svc := &fakePayrollService{}
	router, token := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/payrolls/masters/invalidate", token, nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.invalidated)
}
