package activitylog

import "context"

// Logger records an audit entry. Implementations must not fail the caller's
// business operation; callers log and drop the returned error.
type Logger interface {
	Log(ctx context.Context, entry ActivityLog) error
}
