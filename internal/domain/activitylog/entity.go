package activitylog

import "time"

type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

const (
	ModulePayroll  = "payroll"
	ActionGenerate = "generate"
)

type ActivityLog struct {
	ID          string
	UserID      string
	Module      string
	Action      string
	Description string
	Status      Status
	Metadata    map[string]any
	CreatedAt   time.Time
}
