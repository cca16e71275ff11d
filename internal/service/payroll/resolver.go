package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MasterData is loaded once per run and shared by every employee.
type MasterData struct {
	Components    []payroll.SalaryBreakupComponent
	TaxSlabs      []payroll.TaxSlab
	EOBIRecords   []payroll.EOBIRecord
	ProvidentFund *payroll.ProvidentFund
	Holidays      []schedule.Holiday
}

// EmployeeInputs holds every per-employee source row the calculators read.
type EmployeeInputs struct {
	Increments         []employee.Increment
	Attendance         []attendance.Attendance
	OvertimeRequests   []attendance.OvertimeRequest
	Leaves             []leave.LeaveApplication
	Encashments        []leave.LeaveEncashment
	Allowances         []payroll.Allowance
	Deductions         []payroll.Deduction
	Bonuses            []payroll.Bonus
	Loans              []payroll.LoanRequest
	Advances           []payroll.AdvanceSalary
	Rebates            []payroll.Rebate
	Policy             *schedule.WorkingHoursPolicy
	LeavePolicy        *leave.LeavePolicy
	SocialSecurityRate *decimal.Decimal
	Warnings           []string
}

func (s *PayrollServiceImpl) loadMasterData(ctx context.Context) (MasterData, error) {
	var m MasterData

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Salary breakup components
	g.Go(func() error {
		components, err := s.masterRepo.GetSalaryBreakupComponents(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load salary breakup components: %w", err)
		}
		m.Components = components
		return nil
	})

	// 2. Tax slabs
	g.Go(func() error {
		slabs, err := s.masterRepo.GetActiveTaxSlabs(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load tax slabs: %w", err)
		}
		m.TaxSlabs = slabs
		return nil
	})

	// 3. EOBI records
	g.Go(func() error {
		records, err := s.masterRepo.GetActiveEOBIRecords(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load EOBI records: %w", err)
		}
		m.EOBIRecords = records
		return nil
	})

	// 4. Provident fund, optional
	g.Go(func() error {
		pf, err := s.masterRepo.GetActiveProvidentFund(gCtx)
		if err != nil {
			if errors.Is(err, payroll.ErrProvidentFundNotFound) {
				return nil
			}
			return fmt.Errorf("failed to load provident fund: %w", err)
		}
		m.ProvidentFund = &pf
		return nil
	})

	// 5. Holiday calendar
	g.Go(func() error {
		holidays, err := s.scheduleRepo.GetActiveHolidays(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load holidays: %w", err)
		}
		m.Holidays = holidays
		return nil
	})

	if err := g.Wait(); err != nil {
		return MasterData{}, err
	}
	return m, nil
}

// resolveEmployeeInputs gathers the employee's source rows for the period.
// Missing policy or rate references become warnings, not errors.
func (s *PayrollServiceImpl) resolveEmployeeInputs(ctx context.Context, emp employee.Employee, period payroll.Period) (EmployeeInputs, error) {
	var in EmployeeInputs
	var err error

	if in.Increments, err = s.employeeRepo.GetIncrements(ctx, emp.ID); err != nil {
		return in, fmt.Errorf("failed to load increments for employee %s: %w", emp.ID, err)
	}
	if in.Attendance, err = s.attendanceRepo.GetByEmployeeAndPeriod(ctx, emp.ID, period.Start, period.End); err != nil {
		return in, fmt.Errorf("failed to load attendance for employee %s: %w", emp.ID, err)
	}
	if in.OvertimeRequests, err = s.attendanceRepo.GetApprovedOvertimeRequests(ctx, emp.ID, period.Start, period.End); err != nil {
		return in, fmt.Errorf("failed to load overtime requests for employee %s: %w", emp.ID, err)
	}
	if in.Leaves, err = s.leaveRepo.GetApprovedApplications(ctx, emp.ID, period.Start, period.End); err != nil {
		return in, fmt.Errorf("failed to load leave applications for employee %s: %w", emp.ID, err)
	}
	if in.Encashments, err = s.leaveRepo.GetApprovedEncashments(ctx, emp.ID, period.Month, period.Year); err != nil {
		return in, fmt.Errorf("failed to load leave encashments for employee %s: %w", emp.ID, err)
	}
	if in.Allowances, err = s.adjustmentRepo.GetAllowances(ctx, emp.ID, period.Month, period.Year); err != nil {
		return in, fmt.Errorf("failed to load allowances for employee %s: %w", emp.ID, err)
	}
	if in.Deductions, err = s.adjustmentRepo.GetDeductions(ctx, emp.ID, period.Month, period.Year); err != nil {
		return in, fmt.Errorf("failed to load deductions for employee %s: %w", emp.ID, err)
	}
	if in.Bonuses, err = s.adjustmentRepo.GetBonuses(ctx, emp.ID, period.Month, period.Year); err != nil {
		return in, fmt.Errorf("failed to load bonuses for employee %s: %w", emp.ID, err)
	}
	if in.Loans, err = s.adjustmentRepo.GetApprovedLoans(ctx, emp.ID); err != nil {
		return in, fmt.Errorf("failed to load loans for employee %s: %w", emp.ID, err)
	}
	if in.Advances, err = s.adjustmentRepo.GetApprovedAdvances(ctx, emp.ID); err != nil {
		return in, fmt.Errorf("failed to load advances for employee %s: %w", emp.ID, err)
	}
	if in.Rebates, err = s.adjustmentRepo.GetApprovedRebates(ctx, emp.ID, period.MonthYear()); err != nil {
		return in, fmt.Errorf("failed to load rebates for employee %s: %w", emp.ID, err)
	}

	if emp.WorkingHoursPolicyID != nil {
		policy, err := s.scheduleRepo.GetWorkingHoursPolicy(ctx, *emp.WorkingHoursPolicyID)
		switch {
		case err == nil:
			in.Policy = &policy
		case errors.Is(err, schedule.ErrWorkingHoursPolicyNotFound):
			in.warn("working hours policy %s not found", *emp.WorkingHoursPolicyID)
		default:
			return in, fmt.Errorf("failed to load working hours policy for employee %s: %w", emp.ID, err)
		}
	}

	if emp.LeavePolicyID != nil {
		lp, err := s.leaveRepo.GetLeavePolicy(ctx, *emp.LeavePolicyID)
		switch {
		case err == nil:
			in.LeavePolicy = &lp
		case errors.Is(err, leave.ErrLeavePolicyNotFound):
			in.warn("leave policy %s not found", *emp.LeavePolicyID)
		default:
			return in, fmt.Errorf("failed to load leave policy for employee %s: %w", emp.ID, err)
		}
	}

	rate, err := s.resolveSocialSecurityRate(ctx, emp)
	if err != nil {
		return in, err
	}
	if rate == nil {
		in.warn("no social security rate resolved")
	}
	in.SocialSecurityRate = rate

	return in, nil
}

// resolveSocialSecurityRate prefers the directly assigned institution, then
// the latest active registration. Nil means no rate.
func (s *PayrollServiceImpl) resolveSocialSecurityRate(ctx context.Context, emp employee.Employee) (*decimal.Decimal, error) {
	if emp.SocialSecurityInstitutionID != nil {
		inst, err := s.masterRepo.GetInstitutionByID(ctx, *emp.SocialSecurityInstitutionID)
		switch {
		case err == nil:
			rate := inst.ContributionRate
			return &rate, nil
		case !errors.Is(err, payroll.ErrInstitutionNotFound):
			return nil, fmt.Errorf("failed to load social security institution for employee %s: %w", emp.ID, err)
		}
	}

	reg, err := s.adjustmentRepo.GetLatestSocialSecurityRegistration(ctx, emp.ID)
	if err != nil {
		if errors.Is(err, payroll.ErrRegistrationNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load social security registration for employee %s: %w", emp.ID, err)
	}
	rate := reg.ContributionRate
	return &rate, nil
}

// warn records a non-fatal missing reference. Warnings are logged once the
// record is computed, together with the calculator warnings.
func (in *EmployeeInputs) warn(format string, args ...any) {
	in.Warnings = append(in.Warnings, fmt.Sprintf(format, args...))
}
