package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/activitylog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Log(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewZapLogger(zap.New(core))

	err := l.Log(context.Background(), activitylog.ActivityLog{
		ID:       "a1",
		UserID:   "user-1",
		Module:   activitylog.ModulePayroll,
		Action:   activitylog.ActionGenerate,
		Status:   activitylog.StatusSuccess,
		Metadata: map[string]any{"month": 6},
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].LoggerName)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "user-1", entries[0].ContextMap()["user_id"])
}

func TestZapLogger_FailureIsWarn(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewZapLogger(zap.New(core))

	require.NoError(t, l.Log(context.Background(), activitylog.ActivityLog{Status: activitylog.StatusFailure}))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

type recordingLogger struct {
	calls int
	err   error
}

func (r *recordingLogger) Log(context.Context, activitylog.ActivityLog) error {
	r.calls++
	return r.err
}

func TestMulti(t *testing.T) {
	failing := &recordingLogger{err: errors.New("db down")}
	ok := &recordingLogger{}

	err := Multi(failing, ok).Log(context.Background(), activitylog.ActivityLog{})
	assert.ErrorContains(t, err, "db down")
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls)

	assert.NoError(t, Multi(ok).Log(context.Background(), activitylog.ActivityLog{}))
}
