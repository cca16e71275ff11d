package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

var hoursPerDay = decimal.NewFromInt(8)

type OvertimeInput struct {
	Eligible    bool
	Policy      *schedule.WorkingHoursPolicy
	Requests    []attendance.OvertimeRequest
	Records     []attendance.Attendance
	Holidays    []schedule.Holiday
	BasicSalary decimal.Decimal
	Period      payroll.Period
}

// CalculateOvertime pays approved overtime requests and overtime derived from
// attendance. Regular-day attendance overtime is skipped on dates a request
// already claims. Off-day attendance is always paid at the holiday multiplier
// and stacks on top of any request for the same date.
func CalculateOvertime(in OvertimeInput) payroll.Overtime {
	if !in.Eligible || in.Policy == nil {
		return payroll.Overtime{Amount: decimal.Zero, Lines: []payroll.OvertimeLine{}}
	}

	hourly := in.BasicSalary.Div(daysPerMonth).Div(hoursPerDay)
	weekdayRate := hourly.Mul(in.Policy.OvertimeRate)
	holidayRate := hourly.Mul(in.Policy.HolidayOvertimeRate)

	var (
		lines   = []payroll.OvertimeLine{}
		total   = decimal.Zero
		claimed = make(map[time.Time]bool)
	)

	for _, req := range in.Requests {
		day := payroll.DateOnly(req.Date)
		if !in.Period.Contains(day) {
			continue
		}
		amount := weekdayRate.Mul(req.WeekdayHours).Add(holidayRate.Mul(req.HolidayHours)).Round(2)
		lines = append(lines, payroll.OvertimeLine{
			Date:         day,
			Source:       payroll.OvertimeSourceRequest,
			Type:         ClassifyDay(day, in.Holidays, in.Policy),
			WeekdayHours: req.WeekdayHours,
			HolidayHours: req.HolidayHours,
			Amount:       amount,
		})
		total = total.Add(amount)
		claimed[day] = true
	}

	for _, rec := range in.Records {
		day := payroll.DateOnly(rec.Date)
		if !in.Period.Contains(day) || !rec.HasClockInOut() {
			continue
		}

		overtimeHours := decimalOrZero(rec.OvertimeHours)
		dayType := ClassifyDay(day, in.Holidays, in.Policy)

		var line payroll.OvertimeLine
		switch {
		case dayType.IsOff():
			hours := overtimeHours
			if hours.IsZero() {
				hours = decimalOrZero(rec.WorkingHours)
			}
			if !hours.IsPositive() {
				continue
			}
			line = payroll.OvertimeLine{HolidayHours: hours, Amount: holidayRate.Mul(hours).Round(2)}
		case !claimed[day] && overtimeHours.IsPositive():
			line = payroll.OvertimeLine{WeekdayHours: overtimeHours, Amount: weekdayRate.Mul(overtimeHours).Round(2)}
		default:
			continue
		}

		line.Date = day
		line.Source = payroll.OvertimeSourceAttendance
		line.Type = dayType
		lines = append(lines, line)
		total = total.Add(line.Amount)
	}

	return payroll.Overtime{HourlyRate: hourly.Round(2), Amount: total, Lines: lines}
}

// ClassifyDay resolves a date to holiday, weekly off, weekend or regular, in
// that order of precedence. A weekday explicitly configured as working in the
// policy is regular even on Saturday or Sunday.
func ClassifyDay(day time.Time, holidays []schedule.Holiday, policy *schedule.WorkingHoursPolicy) payroll.DayType {
	for _, h := range holidays {
		if h.IsActive && h.Covers(day) {
			return payroll.DayTypeHoliday
		}
	}

	if policy != nil {
		if off, configured := policy.WeeklyOff.Lookup(day.Weekday()); configured {
			if off {
				return payroll.DayTypeWeeklyOff
			}
			return payroll.DayTypeRegular
		}
	}

	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return payroll.DayTypeWeekend
	}
	return payroll.DayTypeRegular
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
