package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func record(day time.Time, status attendance.Status) attendance.Attendance {
	return attendance.Attendance{Date: day, Status: status}
}

func approvedLeave(from, to time.Time) leave.LeaveApplication {
	return leave.LeaveApplication{FromDate: from, ToDate: to, Status: leave.ApplicationStatusApproved}
}

func TestCalculateAttendanceDeduction_AbsenceUsesFixedDivisor(t *testing.T) {
	// 30000 / 30 = 1000 per day even in a 31 day month.
	july := mustPeriod(t, 7, 2024)
	records := []attendance.Attendance{
		record(date(2024, 7, 1), attendance.StatusPresent),
		record(date(2024, 7, 2), attendance.StatusAbsent),
		record(date(2024, 7, 3), attendance.StatusAbsent),
	}

	got := CalculateAttendanceDeduction(records, nil, nil, dec("30000"), july)

	assert.Equal(t, 2, got.Breakdown.Absent.Count)
	assert.True(t, dec("2000").Equal(got.Breakdown.Absent.Amount))
	assert.True(t, dec("1000").Equal(got.Breakdown.PerDaySalary))
	assert.True(t, dec("2000").Equal(got.Total))
}

func TestCalculateAttendanceDeduction_NoRecordsMeansAbsentExceptLeave(t *testing.T) {
	june := mustPeriod(t, 6, 2024)
	leaves := []leave.LeaveApplication{approvedLeave(date(2024, 6, 10), date(2024, 6, 14))}

	got := CalculateAttendanceDeduction(nil, leaves, nil, dec("30000"), june)

	assert.Equal(t, 25, got.Breakdown.Absent.Count)
	assert.Equal(t, 5, got.Breakdown.Leave.Count)
	assert.True(t, got.Breakdown.Leave.Amount.IsZero())
	assert.True(t, dec("25000").Equal(got.Total))
}

func TestCalculateAttendanceDeduction_LeaveCoveredDaysAreNotPenalised(t *testing.T) {
	june := mustPeriod(t, 6, 2024)
	records := []attendance.Attendance{
		record(date(2024, 6, 3), attendance.StatusAbsent),
		record(date(2024, 6, 4), attendance.StatusHalfDay),
		record(date(2024, 6, 5), attendance.StatusAbsent),
	}
	leaves := []leave.LeaveApplication{approvedLeave(date(2024, 6, 3), date(2024, 6, 4))}

	got := CalculateAttendanceDeduction(records, leaves, nil, dec("30000"), june)

	assert.Equal(t, 1, got.Breakdown.Absent.Count)
	assert.Equal(t, 0, got.Breakdown.HalfDay.Count)
	assert.Equal(t, 2, got.Breakdown.Leave.Count)
	assert.True(t, dec("1000").Equal(got.Total))
}

func TestCalculateAttendanceDeduction_Thresholds(t *testing.T) {
	june := mustPeriod(t, 6, 2024)
	policy := &schedule.WorkingHoursPolicy{
		LateDeductionRate:      dec("10"),
		LateDeductionAfter:     intPtr(3),
		HalfDayDeductionType:   schedule.DeductionTypePercentage,
		HalfDayDeductionRate:   dec("50"),
		ShortDayDeductionType:  schedule.DeductionTypeAmount,
		ShortDayDeductionRate:  dec("250"),
		ShortDayDeductionAfter: intPtr(1),
	}

	var records []attendance.Attendance
	for d := 1; d <= 5; d++ {
		records = append(records, record(date(2024, 6, d), attendance.StatusLate))
	}
	records = append(records,
		record(date(2024, 6, 6), attendance.StatusHalfDay),
		record(date(2024, 6, 7), attendance.StatusShortDay),
		record(date(2024, 6, 8), attendance.StatusShortDay),
		record(date(2024, 6, 9), attendance.StatusShortDay),
		attendance.Attendance{Date: date(2024, 6, 10), Status: attendance.StatusPresent, LateMinutes: intPtr(12)},
	)

	got := CalculateAttendanceDeduction(records, nil, policy, dec("30000"), june)

	// 6 late, 3 free -> 3 x 10% of 1000
	assert.Equal(t, 6, got.Breakdown.Late.Count)
	assert.True(t, dec("300").Equal(got.Breakdown.Late.Amount), "late %s", got.Breakdown.Late.Amount)
	// 1 half day x 50% of 1000
	assert.True(t, dec("500").Equal(got.Breakdown.HalfDay.Amount))
	// 3 short days, 1 free -> 2 x 250 flat
	assert.Equal(t, 3, got.Breakdown.ShortDay.Count)
	assert.True(t, dec("500").Equal(got.Breakdown.ShortDay.Amount))
	assert.True(t, dec("1300").Equal(got.Total))
}

func TestCalculateAttendanceDeduction_ThresholdNotReached(t *testing.T) {
	june := mustPeriod(t, 6, 2024)
	policy := &schedule.WorkingHoursPolicy{
		LateDeductionRate:  dec("10"),
		LateDeductionAfter: intPtr(3),
	}
	records := []attendance.Attendance{
		record(date(2024, 6, 1), attendance.StatusLate),
		record(date(2024, 6, 2), attendance.StatusLate),
	}

	got := CalculateAttendanceDeduction(records, nil, policy, dec("30000"), june)

	assert.Equal(t, 2, got.Breakdown.Late.Count)
	assert.True(t, got.Breakdown.Late.Amount.IsZero())
	assert.True(t, got.Total.IsZero())
}

func TestCalculateAttendanceDeduction_RecordsOutsidePeriodIgnored(t *testing.T) {
	june := mustPeriod(t, 6, 2024)
	records := []attendance.Attendance{
		record(date(2024, 5, 31), attendance.StatusAbsent),
		record(date(2024, 6, 1), attendance.StatusPresent),
	}

	got := CalculateAttendanceDeduction(records, nil, nil, dec("30000"), june)

	assert.Equal(t, 0, got.Breakdown.Absent.Count)
	assert.True(t, got.Total.IsZero())
}
