package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/activitylog"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/payroll-engine/internal/messaging/kafka"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Options tunes the preview fan-out and event publishing.
type Options struct {
	Workers        int
	ChunkSize      int
	ConfirmedTopic string
}

type PayrollServiceImpl struct {
	txManager      payroll.TxManager
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	scheduleRepo   schedule.ScheduleRepository
	masterRepo     payroll.MasterRepository
	adjustmentRepo payroll.AdjustmentRepository
	payrollRepo    payroll.PayrollRepository
	outboxRepo     kafka.OutboxRepository
	activityLog    activitylog.Logger
	masterCache    payroll.MasterCacheInvalidator
	opts           Options
	now            func() time.Time
}

// NewPayrollService wires the engine. outboxRepo and masterCache may be nil
// when Kafka or Redis are not configured.
func NewPayrollService(
	txManager payroll.TxManager,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	scheduleRepo schedule.ScheduleRepository,
	masterRepo payroll.MasterRepository,
	adjustmentRepo payroll.AdjustmentRepository,
	payrollRepo payroll.PayrollRepository,
	outboxRepo kafka.OutboxRepository,
	activityLog activitylog.Logger,
	masterCache payroll.MasterCacheInvalidator,
	opts Options,
) payroll.PayrollService {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.ChunkSize < 1 {
		opts.ChunkSize = 50
	}
	if opts.ConfirmedTopic == "" {
		opts.ConfirmedTopic = payroll.EventTypePayrollConfirmed
	}
	return &PayrollServiceImpl{
		txManager:      txManager,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		scheduleRepo:   scheduleRepo,
		masterRepo:     masterRepo,
		adjustmentRepo: adjustmentRepo,
		payrollRepo:    payrollRepo,
		outboxRepo:     outboxRepo,
		activityLog:    activityLog,
		masterCache:    masterCache,
		opts:           opts,
		now:            time.Now,
	}
}

// ========== PREVIEW ==========

func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PreviewPayrollRequest) ([]payroll.Computation, error) {
	var results []payroll.Computation
	err := s.StreamPreview(ctx, req, func(c payroll.Computation) error {
		results = append(results, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *PayrollServiceImpl) StreamPreview(ctx context.Context, req payroll.PreviewPayrollRequest, emit func(payroll.Computation) error) error {
	if err := req.Validate(); err != nil {
		return err
	}

	period, err := payroll.NewPeriod(req.Month, req.Year)
	if err != nil {
		return err
	}

	employees, err := s.employeeRepo.GetActive(ctx, req.EmployeeIDs)
	if err != nil {
		return fmt.Errorf("failed to load active employees: %w", err)
	}
	if len(employees) == 0 {
		return payroll.ErrNoActiveEmployees
	}

	masters, err := s.loadMasterData(ctx)
	if err != nil {
		return err
	}

	for start := 0; start < len(employees); start += s.opts.ChunkSize {
		end := min(start+s.opts.ChunkSize, len(employees))
		chunk, err := s.computeChunk(ctx, employees[start:end], masters, period)
		if err != nil {
			return err
		}
		for _, c := range chunk {
			if err := emit(c); err != nil {
				return err
			}
		}
	}

	slog.InfoContext(ctx, "payroll preview computed",
		"month", period.Month,
		"year", period.Year,
		"employees", len(employees),
	)
	return nil
}

// computeChunk computes a slice of employees on a bounded worker pool and
// returns results in input order.
func (s *PayrollServiceImpl) computeChunk(ctx context.Context, employees []employee.Employee, masters MasterData, period payroll.Period) ([]payroll.Computation, error) {
	out := make([]payroll.Computation, len(employees))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, emp := range employees {
		g.Go(func() error {
			in, err := s.resolveEmployeeInputs(gCtx, emp, period)
			if err != nil {
				return err
			}
			c := ComputeEmployee(emp, in, masters, period)
			for _, w := range c.Warnings {
				slog.WarnContext(gCtx, "payroll reference missing",
					"employee_id", emp.ID,
					"month", period.Month,
					"year", period.Year,
					"warning", w,
				)
			}
			out[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ========== CONFIRM ==========

func (s *PayrollServiceImpl) Confirm(ctx context.Context, req payroll.ConfirmPayrollRequest) (payroll.PayrollHeaderResponse, error) {
	header, err := s.confirm(ctx, req)
	if err != nil {
		s.recordActivity(ctx, req.SubmittedBy, activitylog.StatusFailure,
			fmt.Sprintf("Payroll confirmation for %02d/%d failed: %v", req.Month, req.Year, err),
			map[string]any{"month": req.Month, "year": req.Year, "employees": len(req.Details)},
		)
		if isValidationError(err) {
			return payroll.PayrollHeaderResponse{}, err
		}
		return payroll.PayrollHeaderResponse{}, fmt.Errorf("%w: %w", payroll.ErrConfirmFailed, err)
	}

	s.recordActivity(ctx, req.SubmittedBy, activitylog.StatusSuccess,
		fmt.Sprintf("Payroll for %02d/%d confirmed for %d employee(s), total %s",
			req.Month, req.Year, len(req.Details), header.TotalAmount.StringFixed(2)),
		map[string]any{"payroll_id": header.ID, "month": req.Month, "year": req.Year, "employees": len(req.Details)},
	)

	return payroll.ToHeaderResponse(header), nil
}

func (s *PayrollServiceImpl) confirm(ctx context.Context, req payroll.ConfirmPayrollRequest) (payroll.PayrollHeader, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollHeader{}, err
	}
	if _, err := payroll.NewPeriod(req.Month, req.Year); err != nil {
		return payroll.PayrollHeader{}, err
	}

	var header payroll.PayrollHeader
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.LockPeriod(txCtx, req.Month, req.Year); err != nil {
			return err
		}

		current, err := s.payrollRepo.GetOrCreateHeader(txCtx, req.Month, req.Year, req.SubmittedBy)
		if err != nil {
			return err
		}
		if !current.Status.Confirmable() {
			return payroll.ErrPayrollNotConfirmable
		}

		details := make([]payroll.PayrollDetail, 0, len(req.Details))
		for _, d := range req.Details {
			snapshot, err := s.employeeRepo.GetBankInfo(txCtx, d.EmployeeID)
			if err != nil {
				return fmt.Errorf("failed to snapshot bank info for employee %s: %w", d.EmployeeID, err)
			}

			computation := d.Computation
			computation.Month = req.Month
			computation.Year = req.Year

			details = append(details, payroll.PayrollDetail{
				ID:          uuid.New().String(),
				PayrollID:   current.ID,
				Computation: computation,
				BankInfo:    d.BankInfo.Resolve(snapshot),
			})
		}

		if err := s.payrollRepo.DeleteDetails(txCtx, current.ID, req.EmployeeIDs()); err != nil {
			return err
		}
		if err := s.payrollRepo.InsertDetails(txCtx, details); err != nil {
			return err
		}

		header, err = s.payrollRepo.FinalizeHeader(txCtx, current.ID, payroll.PayrollStatusConfirmed)
		if err != nil {
			return err
		}

		return s.enqueueConfirmed(txCtx, header, req)
	})
	if err != nil {
		return payroll.PayrollHeader{}, err
	}

	return header, nil
}

func (s *PayrollServiceImpl) enqueueConfirmed(ctx context.Context, header payroll.PayrollHeader, req payroll.ConfirmPayrollRequest) error {
	if s.outboxRepo == nil {
		return nil
	}

	payload, err := json.Marshal(payroll.ConfirmedEvent{
		PayrollID:   header.ID,
		Month:       header.Month,
		Year:        header.Year,
		TotalAmount: header.TotalAmount,
		EmployeeIDs: req.EmployeeIDs(),
		ConfirmedBy: req.SubmittedBy,
		ConfirmedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode payroll confirmed event: %w", err)
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "payroll",
		AggregateID:   header.ID,
		EventType:     payroll.EventTypePayrollConfirmed,
		Topic:         s.opts.ConfirmedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to enqueue payroll confirmed event: %w", err)
	}
	return nil
}

func (s *PayrollServiceImpl) recordActivity(ctx context.Context, userID string, status activitylog.Status, description string, metadata map[string]any) {
	if s.activityLog == nil {
		return
	}
	entry := activitylog.ActivityLog{
		ID:          uuid.New().String(),
		UserID:      userID,
		Module:      activitylog.ModulePayroll,
		Action:      activitylog.ActionGenerate,
		Description: description,
		Status:      status,
		Metadata:    metadata,
		CreatedAt:   s.now().UTC(),
	}
	// The caller's transaction is already settled here, use a context that
	// survives request cancellation.
	if err := s.activityLog.Log(context.WithoutCancel(ctx), entry); err != nil {
		slog.ErrorContext(ctx, "failed to write payroll activity log", "error", err, "status", status)
	}
}

// isValidationError reports whether err is caller-facing input rejection.
func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return true
	}
	return errors.Is(err, payroll.ErrNoActiveEmployees) ||
		errors.Is(err, payroll.ErrPayrollNotConfirmable) ||
		errors.Is(err, payroll.ErrInvalidPeriod) ||
		errors.Is(err, payroll.ErrDuplicateEmployee)
}

// ========== READ ==========

func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.PayrollWithDetailsResponse, error) {
	header, err := s.payrollRepo.GetHeaderByID(ctx, id)
	if err != nil {
		return payroll.PayrollWithDetailsResponse{}, err
	}

	details, err := s.payrollRepo.GetDetails(ctx, id)
	if err != nil {
		return payroll.PayrollWithDetailsResponse{}, err
	}

	resp := payroll.PayrollWithDetailsResponse{
		PayrollHeaderResponse: payroll.ToHeaderResponse(header),
		Details:               make([]payroll.PayrollDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, payroll.ToDetailResponse(d))
	}
	resp.EmployeeCount = len(details)
	return resp, nil
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if err := filter.Normalize(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	headers, total, err := s.payrollRepo.ListHeaders(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	data := make([]payroll.PayrollHeaderResponse, 0, len(headers))
	for _, h := range headers {
		data = append(data, payroll.ToHeaderResponse(h))
	}

	return payroll.ListPayrollResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) Export(ctx context.Context, id string) ([]byte, error) {
	header, err := s.payrollRepo.GetHeaderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.payrollRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	return buildPayrollWorkbook(header, details)
}

func (s *PayrollServiceImpl) InvalidateMasters(ctx context.Context) error {
	if s.masterCache == nil {
		return nil
	}
	return s.masterCache.InvalidateMasters(ctx)
}
