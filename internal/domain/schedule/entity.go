package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DeductionType string

const (
	DeductionTypeAmount     DeductionType = "amount"
	DeductionTypePercentage DeductionType = "percentage"
)

// WorkingHoursPolicy - attendance penalty and overtime rules assigned to employees
type WorkingHoursPolicy struct {
	ID   string
	Name string

	// Half-day / short-day penalties. Rate is a flat amount or a percentage of
	// the per-day salary depending on the type. After is the number of free
	// occurrences before the penalty applies.
	HalfDayDeductionType   DeductionType
	HalfDayDeductionRate   decimal.Decimal
	HalfDayDeductionAfter  *int
	ShortDayDeductionType  DeductionType
	ShortDayDeductionRate  decimal.Decimal
	ShortDayDeductionAfter *int

	// Late penalty, always a percentage of the per-day salary.
	LateDeductionRate  decimal.Decimal
	LateDeductionAfter *int

	// Overtime multipliers
	OvertimeRate        decimal.Decimal
	HolidayOvertimeRate decimal.Decimal

	WeeklyOff WeeklyOffDays
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeeklyOffDays maps a weekday to whether it is an off day. A weekday missing
// from the map falls back to the Saturday/Sunday weekend rule.
type WeeklyOffDays map[time.Weekday]bool

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Lookup reports whether day is configured and, if so, whether it is off.
func (w WeeklyOffDays) Lookup(day time.Weekday) (off bool, configured bool) {
	off, configured = w[day]
	return off, configured
}

// Value implements driver.Valuer for database storage
func (w WeeklyOffDays) Value() (driver.Value, error) {
	if len(w) == 0 {
		return nil, nil
	}
	out := make(map[string]bool, len(w))
	for day, off := range w {
		out[strings.ToLower(day.String())] = off
	}
	return json.Marshal(out)
}

// Scan implements sql.Scanner for database retrieval
func (w *WeeklyOffDays) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan WeeklyOffDays: invalid type")
	}

	var in map[string]bool
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}

	days := make(WeeklyOffDays, len(in))
	for name, off := range in {
		if day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
			days[day] = off
		}
	}
	*w = days
	return nil
}

// Holiday - recurring calendar holiday. Only month and day are significant,
// a range may wrap across the year end.
type Holiday struct {
	ID        string
	Name      string
	DateFrom  time.Time
	DateTo    time.Time
	IsActive  bool
	CreatedAt time.Time
}

// Covers reports whether date falls inside the holiday range, ignoring years.
func (h Holiday) Covers(date time.Time) bool {
	md := monthDay(date)
	from, to := monthDay(h.DateFrom), monthDay(h.DateTo)
	if from <= to {
		return md >= from && md <= to
	}
	return md >= from || md <= to
}

func monthDay(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}
