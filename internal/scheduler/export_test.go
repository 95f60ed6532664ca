package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 0 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("every day"))
	assert.Error(t, ValidateCronSchedule("0 0 0 * * *"), "seconds field is not accepted")
}

func TestGetCronDescription(t *testing.T) {
	assert.Equal(t, "Daily at midnight", GetCronDescription("0 0 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", GetCronDescription("5 4 * * *"))
}

func TestGetNextRunTime(t *testing.T) {
	next, err := GetNextRunTime("0 * * * *")
	require.NoError(t, err)
	assert.True(t, next.After(time.Now()))
	assert.Zero(t, next.Minute())

	_, err = GetNextRunTime("nonsense")
	assert.Error(t, err)
}

func TestExportScheduler_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewExportScheduler("0 0 * * *", func(context.Context) error { return nil }, nil)
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.NextRun())

	require.NoError(t, s.Start(context.Background()), "second start is a no-op")

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())

	s.Stop()
}

func TestExportScheduler_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	s := NewExportScheduler("*/15 * * * *", func(context.Context) error { return nil }, nil)
	require.NoError(t, s.Start(ctx))

	cancel()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestExportScheduler_InvalidSchedule(t *testing.T) {
	s := NewExportScheduler("tomorrow", func(context.Context) error { return nil }, nil)
	assert.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestExportScheduler_RunNow(t *testing.T) {
	calls := 0
	boom := errors.New("queue closed")
	s := NewExportScheduler("0 0 * * *", func(context.Context) error {
		calls++
		if calls > 1 {
			return boom
		}
		return nil
	}, nil)

	assert.NoError(t, s.RunNow(context.Background()))
	assert.ErrorIs(t, s.RunNow(context.Background()), boom)
	assert.Equal(t, 2, calls)
}

func TestExportScheduler_RunJobLogsFailure(t *testing.T) {
	ran := make(chan struct{}, 1)
	s := NewExportScheduler("0 0 * * *", func(context.Context) error {
		ran <- struct{}{}
		return errors.New("boom")
	}, nil)

	s.runJob()
	select {
	case <-ran:
	default:
		t.Fatal("job was not called")
	}
}
