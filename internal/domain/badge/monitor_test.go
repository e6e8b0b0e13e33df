package badge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	count  int
	err    error
	cutoff time.Time
	calls  chan struct{}
}

func (f *fakeCounter) CountPendingOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	f.cutoff = cutoff
	if f.calls != nil {
		select {
		case f.calls <- struct{}{}:
		default:
		}
	}
	return f.count, f.err
}

func TestStaleMonitorCheck(t *testing.T) {
	counter := &fakeCounter{count: 3}
	m, err := NewStaleMonitor(counter, 10*time.Minute, time.Minute)
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	n, err := m.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, fixed.Add(-10*time.Minute), counter.cutoff)
}

func TestStaleMonitorCheckError(t *testing.T) {
	counter := &fakeCounter{err: errors.New("connection refused")}
	m, err := NewStaleMonitor(counter, time.Minute, time.Minute)
	require.NoError(t, err)

	n, err := m.Check(context.Background())
	assert.Error(t, err)
	assert.Zero(t, n)
}

func TestStaleMonitorDefaults(t *testing.T) {
	m, err := NewStaleMonitor(&fakeCounter{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, m.staleAge)
	assert.Equal(t, 5*time.Minute, m.interval)
}

func TestStaleMonitorStartRunsImmediately(t *testing.T) {
	counter := &fakeCounter{calls: make(chan struct{}, 1)}
	m, err := NewStaleMonitor(counter, time.Minute, time.Hour)
	require.NoError(t, err)

	require.NoError(t, m.Start())
	defer m.Stop()

	select {
	case <-counter.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("stale check did not run on start")
	}
}
