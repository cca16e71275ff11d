package schedule

import "errors"

var (
	ErrWorkingHoursPolicyNotFound = errors.New("working hours policy not found")
)
