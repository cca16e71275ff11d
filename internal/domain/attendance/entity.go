package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusLate     Status = "late"
	StatusHalfDay  Status = "half-day"
	StatusShortDay Status = "short-day"
)

// Attendance - one record per employee per calendar day
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Status        Status
	ClockIn       *time.Time
	ClockOut      *time.Time
	LateMinutes   *int
	WorkingHours  *decimal.Decimal
	OvertimeHours *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLate treats any recorded late minutes as late, whatever the status says.
func (a Attendance) IsLate() bool {
	return a.Status == StatusLate || (a.LateMinutes != nil && *a.LateMinutes > 0)
}

func (a Attendance) HasClockInOut() bool {
	return a.ClockIn != nil && a.ClockOut != nil
}

type OvertimeRequestStatus string

const (
	OvertimeRequestPending  OvertimeRequestStatus = "pending"
	OvertimeRequestApproved OvertimeRequestStatus = "approved"
	OvertimeRequestRejected OvertimeRequestStatus = "rejected"
)

// OvertimeRequest - pre-approved overtime hours for a date
type OvertimeRequest struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	WeekdayHours decimal.Decimal
	HolidayHours decimal.Decimal
	Status       OvertimeRequestStatus
	CreatedAt    time.Time
}
