package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"niche-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Retry
// ==========================

func fastRetry(n int) RetryConfig {
	return RetryConfig{MaxRetries: n, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(3), nil, func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(2), nil, func(context.Context) error {
		calls++
		return errors.New("unavailable")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.Contains(t, err.Error(), "unavailable")
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("invalid argument")
	calls := 0
	err := Retry(context.Background(), fastRetry(5), isRetryableZeebeError, func(context.Context) error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := RetryConfig{MaxRetries: 5, BaseDelay: time.Hour}

	calls := 0
	err := Retry(ctx, cfg, nil, func(context.Context) error {
		calls++
		cancel()
		return errors.New("timeout")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"i/o timeout", true},
		{"write: broken pipe", true},
		{"rpc error: code = NotFound desc = no such job", false},
		{"invalid argument", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableZeebeError(errors.New(tt.msg)))
		})
	}
}

// ==========================
// Manager
// ==========================

type stubWorker struct {
	taskType    string
	enabled     bool
	registerErr error
	registered  bool
	closed      bool
}

func (s *stubWorker) Register() error {
	if s.registerErr != nil {
		return s.registerErr
	}
	s.registered = true
	return nil
}

func (s *stubWorker) Close()              { s.closed = true }
func (s *stubWorker) GetTaskType() string { return s.taskType }
func (s *stubWorker) IsEnabled() bool     { return s.enabled }

func TestManager_StartAndStop(t *testing.T) {
	m := NewManager(logger.NewTestLogger(t))
	rank := &stubWorker{taskType: "rank", enabled: true}
	score := &stubWorker{taskType: "score", enabled: false}

	require.NoError(t, m.Add(rank))
	require.NoError(t, m.Add(score))
	assert.Error(t, m.Add(&stubWorker{taskType: "rank"}), "duplicate task type")

	require.NoError(t, m.Start())
	assert.True(t, rank.registered)
	assert.False(t, score.registered)
	assert.Equal(t, []string{"rank"}, m.TaskTypes())

	m.Stop()
	assert.True(t, rank.closed)
	assert.Empty(t, m.TaskTypes())
}

func TestManager_StartFailureClosesRegistered(t *testing.T) {
	m := NewManager(logger.NewNoOpLogger())
	first := &stubWorker{taskType: "first", enabled: true}
	second := &stubWorker{taskType: "second", enabled: true, registerErr: errors.New("boom")}

	require.NoError(t, m.Add(first))
	require.NoError(t, m.Add(second))

	err := m.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register second")
	assert.True(t, first.closed)
	assert.Empty(t, m.TaskTypes())
}
