package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// LeaveApplication - a leave spanning FromDate..ToDate inclusive
type LeaveApplication struct {
	ID          string
	EmployeeID  string
	LeaveTypeID *string
	FromDate    time.Time
	ToDate      time.Time
	Status      ApplicationStatus
	CreatedAt   time.Time
}

// Covers reports whether day (a date at midnight UTC) falls within the leave.
func (l LeaveApplication) Covers(day time.Time) bool {
	from := dateOnly(l.FromDate)
	to := dateOnly(l.ToDate)
	return !day.Before(from) && !day.After(to)
}

// LeaveEncashment - unused leave paid out in a given month
type LeaveEncashment struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int
	Days       decimal.Decimal
	Amount     decimal.Decimal
	Status     ApplicationStatus
	CreatedAt  time.Time
}

// LeavePolicy - the leave entitlement scheme assigned to an employee
type LeavePolicy struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
