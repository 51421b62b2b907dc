package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Veraticus/financeflow/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	}, fastRetry(3))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	cause := errors.New("still broken")
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return cause
	}, fastRetry(2))

	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, cause)
}

func TestWithRetry_SingleAttemptReturnsCause(t *testing.T) {
	cause := errors.New("once")
	err := WithRetry(context.Background(), func() error { return cause }, fastRetry(1))

	assert.Same(t, cause, err)
}

func TestWithRetry_NonRetryableStops(t *testing.T) {
	cause := errors.New("bad input")
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: cause, Retryable: false}
	}, fastRetry(5))

	assert.Equal(t, 1, calls)
	assert.Same(t, cause, err)
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error { return errors.New("fail") }, service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Second,
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewUserError("could not save expense", cause)

	assert.Equal(t, "could not save expense: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "just a message", NewUserError("just a message", nil).Error())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"key":"value"`)

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
