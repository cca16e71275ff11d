package leave

import "errors"

var (
	ErrLeavePolicyNotFound = errors.New("leave policy not found")
)
