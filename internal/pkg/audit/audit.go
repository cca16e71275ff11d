// Package audit provides activity log sinks.
package audit

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/activitylog"
	"go.uber.org/zap"
)

// ZapLogger writes activity entries to a named zap logger.
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger.Named("audit")}
}

func (l *ZapLogger) Log(_ context.Context, entry activitylog.ActivityLog) error {
	fields := []zap.Field{
		zap.String("id", entry.ID),
		zap.String("user_id", entry.UserID),
		zap.String("module", entry.Module),
		zap.String("action", entry.Action),
		zap.String("status", string(entry.Status)),
		zap.String("description", entry.Description),
		zap.Time("created_at", entry.CreatedAt),
		zap.Any("meta", entry.Metadata),
	}

	if entry.Status == activitylog.StatusFailure {
		l.logger.Warn("audit event", fields...)
		return nil
	}
	l.logger.Info("audit event", fields...)
	return nil
}

type multiLogger []activitylog.Logger

// Multi fans an entry out to every sink. All sinks are attempted and their
// errors joined.
func Multi(loggers ...activitylog.Logger) activitylog.Logger {
	return multiLogger(loggers)
}

func (m multiLogger) Log(ctx context.Context, entry activitylog.ActivityLog) error {
	var errs []error
	for _, l := range m {
		if err := l.Log(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
