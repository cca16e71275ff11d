package payroll

import (
	"fmt"
	"time"
)

// Period - a calendar month, Start and End inclusive at midnight UTC
type Period struct {
	Month int
	Year  int
	Start time.Time
	End   time.Time
}

func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 || year < 1 {
		return Period{}, fmt.Errorf("%w: %d/%d", ErrInvalidPeriod, month, year)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Month: month,
		Year:  year,
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}, nil
}

// Days is the number of calendar days in the period.
func (p Period) Days() int {
	return p.End.Day()
}

func (p Period) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// EachDay calls fn for every date in the period.
func (p Period) EachDay(fn func(day time.Time)) {
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// MonthYear formats the period as "YYYY-MM".
func (p Period) MonthYear() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// DateOnly truncates t to its calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole days from a to b (b - a).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
