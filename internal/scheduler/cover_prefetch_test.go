package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (e *recordingEnqueuer) EnqueuePrefetchAll(_ context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	if e.err != nil {
		return "", e.err
	}
	return "task-1", nil
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		wantErr  bool
	}{
		{"0 3 * * *", false},
		{"*/15 * * * *", false},
		{"0 0 1 * 1-5", false},
		{"", true},
		{"not a schedule", true},
		{"0 3 * *", true},
		{"0 0 3 * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNextRunTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 30, 0, 0, time.UTC)

	next, err := NextRunTime("0 3 * * *", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC), next)

	_, err = NextRunTime("bogus", now)
	assert.Error(t, err)
}

func TestCoverPrefetchScheduler_Disabled(t *testing.T) {
	s := NewCoverPrefetchScheduler(&recordingEnqueuer{}, "", false)

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestCoverPrefetchScheduler_InvalidSchedule(t *testing.T) {
	s := NewCoverPrefetchScheduler(&recordingEnqueuer{}, "every night", true)

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestCoverPrefetchScheduler_StartStop(t *testing.T) {
	s := NewCoverPrefetchScheduler(&recordingEnqueuer{}, "", true)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))

	// Starting twice is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestCoverPrefetchScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewCoverPrefetchScheduler(&recordingEnqueuer{}, "", true)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestCoverPrefetchScheduler_RunNow(t *testing.T) {
	enq := &recordingEnqueuer{}
	s := NewCoverPrefetchScheduler(enq, "", false)

	id, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "task-1", id)
	assert.Equal(t, 1, enq.calls)

	enq.err = errors.New("queue closed")
	_, err = s.RunNow(context.Background())
	assert.Error(t, err)

	_, err = NewCoverPrefetchScheduler(nil, "", true).RunNow(context.Background())
	assert.Error(t, err)
}
