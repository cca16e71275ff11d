package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

// daysPerMonth is the fixed divisor for the per-day salary, independent of
// the actual month length.
var daysPerMonth = decimal.NewFromInt(30)

// CalculateAttendanceDeduction charges absences, late arrivals, half days and
// short days against the per-day salary. Days covered by approved leave are
// never penalised. An employee with no attendance records at all is absent on
// every non-leave day of the period.
func CalculateAttendanceDeduction(
	records []attendance.Attendance,
	leaves []leave.LeaveApplication,
	policy *schedule.WorkingHoursPolicy,
	pkg decimal.Decimal,
	period payroll.Period,
) payroll.AttendanceDeduction {
	perDay := pkg.Div(daysPerMonth)
	breakdown := payroll.AttendanceBreakdown{PerDaySalary: perDay.Round(2)}
	breakdown.Leave.Amount = decimal.Zero

	onLeave := func(day time.Time) bool {
		for _, l := range leaves {
			if l.Covers(day) {
				return true
			}
		}
		return false
	}

	period.EachDay(func(day time.Time) {
		if onLeave(day) {
			breakdown.Leave.Count++
		}
	})

	inPeriod := 0
	for _, rec := range records {
		day := payroll.DateOnly(rec.Date)
		if !period.Contains(day) {
			continue
		}
		inPeriod++
		if onLeave(day) {
			continue
		}

		switch {
		case rec.Status == attendance.StatusAbsent:
			breakdown.Absent.Count++
		case rec.Status == attendance.StatusHalfDay:
			breakdown.HalfDay.Count++
		case rec.Status == attendance.StatusShortDay:
			breakdown.ShortDay.Count++
		}
		if rec.IsLate() {
			breakdown.Late.Count++
		}
	}

	if inPeriod == 0 {
		breakdown.Absent.Count = period.Days() - breakdown.Leave.Count
	}

	breakdown.Absent.Amount = perDay.Mul(decimal.NewFromInt(int64(breakdown.Absent.Count))).Round(2)

	if policy != nil {
		breakdown.Late.Amount = percentageCharge(
			perDay, policy.LateDeductionRate, chargeable(breakdown.Late.Count, policy.LateDeductionAfter),
		)
		breakdown.HalfDay.Amount = policyCharge(
			perDay, policy.HalfDayDeductionType, policy.HalfDayDeductionRate,
			chargeable(breakdown.HalfDay.Count, policy.HalfDayDeductionAfter),
		)
		breakdown.ShortDay.Amount = policyCharge(
			perDay, policy.ShortDayDeductionType, policy.ShortDayDeductionRate,
			chargeable(breakdown.ShortDay.Count, policy.ShortDayDeductionAfter),
		)
	} else {
		breakdown.Late.Amount = decimal.Zero
		breakdown.HalfDay.Amount = decimal.Zero
		breakdown.ShortDay.Amount = decimal.Zero
	}

	total := breakdown.Absent.Amount.
		Add(breakdown.Late.Amount).
		Add(breakdown.HalfDay.Amount).
		Add(breakdown.ShortDay.Amount)

	return payroll.AttendanceDeduction{Total: total, Breakdown: breakdown}
}

// chargeable returns how many occurrences exceed the free allowance.
func chargeable(count int, after *int) int {
	if after == nil {
		return count
	}
	if n := count - *after; n > 0 {
		return n
	}
	return 0
}

func percentageCharge(perDay, rate decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return perDay.Mul(rate).Div(hundred).Mul(decimal.NewFromInt(int64(count))).Round(2)
}

func policyCharge(perDay decimal.Decimal, kind schedule.DeductionType, rate decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	if kind == schedule.DeductionTypeAmount {
		return rate.Mul(decimal.NewFromInt(int64(count))).Round(2)
	}
	return percentageCharge(perDay, rate, count)
}
