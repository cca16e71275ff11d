package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func workedDay(day time.Time, workingHours, overtimeHours string) attendance.Attendance {
	in := day.Add(9 * time.Hour)
	out := day.Add(18 * time.Hour)
	rec := attendance.Attendance{Date: day, Status: attendance.StatusPresent, ClockIn: &in, ClockOut: &out}
	if workingHours != "" {
		rec.WorkingHours = decPtr(workingHours)
	}
	if overtimeHours != "" {
		rec.OvertimeHours = decPtr(overtimeHours)
	}
	return rec
}

func overtimePolicy() *schedule.WorkingHoursPolicy {
	return &schedule.WorkingHoursPolicy{OvertimeRate: dec("1.5"), HolidayOvertimeRate: dec("2")}
}

func TestCalculateOvertime_MergesRequestsAndAttendance(t *testing.T) {
	june := mustPeriod(t, 6, 2024)
	noClockOut := workedDay(date(2024, 6, 5), "8", "5")
	noClockOut.ClockOut = nil

	got := CalculateOvertime(OvertimeInput{
		Eligible: true,
		Policy:   overtimePolicy(),
		Requests: []attendance.OvertimeRequest{
			{Date: date(2024, 6, 3), WeekdayHours: dec("2"), HolidayHours: decimal.Zero},
			{Date: date(2024, 6, 15), WeekdayHours: decimal.Zero, HolidayHours: dec("4")},
		},
		Records: []attendance.Attendance{
			workedDay(date(2024, 6, 3), "8", "3"),  // claimed regular day, skipped
			workedDay(date(2024, 6, 4), "8", "1"),  // regular overtime
			noClockOut,                             // incomplete, skipped
			workedDay(date(2024, 6, 8), "8", ""),   // Saturday, full working hours
			workedDay(date(2024, 6, 15), "8", "2"), // Saturday, stacks on the request
		},
		BasicSalary: dec("24000"),
		Period:      june,
	})

	// hourly = 24000 / 30 / 8 = 100
	assert.True(t, dec("100").Equal(got.HourlyRate))
	// 300 + 800 (requests) + 150 + 1600 + 400 (attendance)
	assert.True(t, dec("3250").Equal(got.Amount), "amount %s", got.Amount)
	require.Len(t, got.Lines, 5)

	assert.Equal(t, payroll.OvertimeSourceRequest, got.Lines[0].Source)
	assert.Equal(t, payroll.DayTypeRegular, got.Lines[0].Type)
	assert.Equal(t, payroll.DayTypeWeekend, got.Lines[1].Type)

	assert.Equal(t, payroll.OvertimeSourceAttendance, got.Lines[2].Source)
	assert.Equal(t, date(2024, 6, 4), got.Lines[2].Date)
	assert.Equal(t, date(2024, 6, 8), got.Lines[3].Date)
	assert.True(t, dec("1600").Equal(got.Lines[3].Amount))
	assert.Equal(t, date(2024, 6, 15), got.Lines[4].Date)
}

func TestCalculateOvertime_NotEligibleOrNoPolicy(t *testing.T) {
	june := mustPeriod(t, 6, 2024)
	requests := []attendance.OvertimeRequest{{Date: date(2024, 6, 3), WeekdayHours: dec("2")}}

	for _, in := range []OvertimeInput{
		{Eligible: false, Policy: overtimePolicy(), Requests: requests, BasicSalary: dec("24000"), Period: june},
		{Eligible: true, Policy: nil, Requests: requests, BasicSalary: dec("24000"), Period: june},
	} {
		got := CalculateOvertime(in)
		assert.True(t, got.Amount.IsZero())
		assert.Empty(t, got.Lines)
	}
}

func TestCalculateOvertime_HolidayUsesHolidayMultiplier(t *testing.T) {
	june := mustPeriod(t, 6, 2024)
	holidays := []schedule.Holiday{{Name: "Founders Day", DateFrom: date(2000, 6, 12), DateTo: date(2000, 6, 12), IsActive: true}}

	got := CalculateOvertime(OvertimeInput{
		Eligible:    true,
		Policy:      overtimePolicy(),
		Records:     []attendance.Attendance{workedDay(date(2024, 6, 12), "6", "")},
		Holidays:    holidays,
		BasicSalary: dec("24000"),
		Period:      june,
	})

	require.Len(t, got.Lines, 1)
	assert.Equal(t, payroll.DayTypeHoliday, got.Lines[0].Type)
	assert.True(t, dec("1200").Equal(got.Amount))
}

func TestClassifyDay(t *testing.T) {
	newYear := schedule.Holiday{DateFrom: date(2023, 12, 30), DateTo: date(2024, 1, 2), IsActive: true}
	inactive := schedule.Holiday{DateFrom: date(2023, 3, 23), DateTo: date(2023, 3, 23), IsActive: false}
	fridayOff := &schedule.WorkingHoursPolicy{WeeklyOff: schedule.WeeklyOffDays{
		time.Friday:   true,
		time.Saturday: false,
	}}

	tests := []struct {
		name   string
		day    time.Time
		policy *schedule.WorkingHoursPolicy
		want   payroll.DayType
	}{
		{"holiday wrapping the year end", date(2025, 1, 1), nil, payroll.DayTypeHoliday},
		{"holiday before the wrap", date(2025, 12, 31), nil, payroll.DayTypeHoliday},
		{"inactive holiday ignored", date(2026, 3, 23), nil, payroll.DayTypeRegular},
		{"default weekend", date(2024, 6, 9), nil, payroll.DayTypeWeekend},
		{"weekday", date(2024, 6, 10), nil, payroll.DayTypeRegular},
		{"configured weekly off", date(2024, 6, 7), fridayOff, payroll.DayTypeWeeklyOff},
		{"weekend configured as working", date(2024, 6, 8), fridayOff, payroll.DayTypeRegular},
		{"unconfigured sunday falls back to weekend", date(2024, 6, 9), fridayOff, payroll.DayTypeWeekend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDay(tt.day, []schedule.Holiday{newYear, inactive}, tt.policy)
			assert.Equal(t, tt.want, got)
		})
	}
}
