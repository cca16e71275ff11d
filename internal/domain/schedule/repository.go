package schedule

import "context"

type ScheduleRepository interface {
	GetWorkingHoursPolicy(ctx context.Context, id string) (WorkingHoursPolicy, error)
	GetActiveHolidays(ctx context.Context) ([]Holiday, error)
}
