package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RockerzXY/weekscounter-bot/internal/domain"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New(zap.NewNop())
	t.Cleanup(r.Stop)
	return r
}

func TestScheduleReplacesExistingJob(t *testing.T) {
	r := newTestRegistry(t)
	noop := func(int64) {}

	require.NoError(t, r.Schedule(1, domain.Wednesday, 9, 0, noop))
	require.Equal(t, 1, r.Len())
	require.True(t, r.Scheduled(1))

	// Replacing must leave exactly one job for the user.
	require.NoError(t, r.Schedule(1, domain.Friday, 18, 0, noop))
	require.Equal(t, 1, r.Len())
	require.True(t, r.Scheduled(1))
}

func TestScheduleIndependentUsers(t *testing.T) {
	r := newTestRegistry(t)
	noop := func(int64) {}

	require.NoError(t, r.Schedule(1, domain.Monday, 8, 0, noop))
	require.NoError(t, r.Schedule(2, domain.Monday, 8, 0, noop))
	require.Equal(t, 2, r.Len())

	r.Cancel(1)
	require.False(t, r.Scheduled(1))
	require.True(t, r.Scheduled(2))
	require.Equal(t, 1, r.Len())
}

func TestCancelAbsentIsNoop(t *testing.T) {
	r := newTestRegistry(t)
	r.Cancel(99)
	require.Equal(t, 0, r.Len())
}

func TestStartIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	require.False(t, r.IsRunning())

	r.Start()
	require.True(t, r.IsRunning())
	r.Start() // second call must be a no-op, not an error or a second runner
	require.True(t, r.IsRunning())

	r.Stop()
	require.False(t, r.IsRunning())
}

func TestScheduleWhileRunning(t *testing.T) {
	r := newTestRegistry(t)
	r.Start()

	noop := func(int64) {}
	require.NoError(t, r.Schedule(1, domain.Sunday, 23, 30, noop))
	require.NoError(t, r.Schedule(1, domain.Monday, 0, 0, noop))
	require.Equal(t, 1, r.Len())
}

func TestCronSpec(t *testing.T) {
	require.Equal(t, "0 9 * * WED", cronSpec(domain.Wednesday, 9, 0))
	require.Equal(t, "30 18 * * FRI", cronSpec(domain.Friday, 18, 30))
	require.Equal(t, "0 0 * * SUN", cronSpec(domain.Sunday, 0, 0))
}
