package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RockerzXY/weekscounter-bot/internal/domain"
	"github.com/RockerzXY/weekscounter-bot/internal/scheduler"
	"github.com/RockerzXY/weekscounter-bot/internal/store"
)

// fakeRepo is an in-memory store.Repo for notifier tests.
type fakeRepo struct {
	users   map[int64]*domain.UserProfile
	listErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]*domain.UserProfile)}
}

func (f *fakeRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeRepo) Upsert(_ context.Context, p *domain.UserProfile) error {
	cp := *p
	f.users[p.UserID] = &cp
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (*domain.UserProfile, error) {
	p, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) ListUserIDs(_ context.Context) ([]int64, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeRepo) RecordDelivery(_ context.Context, id int64, day time.Time) error {
	p, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	d := domain.DateOf(day)
	p.LastNotifiedOn = &d
	return nil
}

func (f *fakeRepo) Remove(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) Close() error { return nil }

// fakeSender records sends and can be told to fail.
type fakeSender struct {
	fail bool
	sent []string
}

func (f *fakeSender) Send(_ int64, text string) error {
	if f.fail {
		return errors.New("telegram unavailable")
	}
	f.sent = append(f.sent, text)
	return nil
}

func profile(id int64, day domain.Weekday, hour int) *domain.UserProfile {
	return &domain.UserProfile{
		UserID:        id,
		CustomName:    "Alex",
		BirthDate:     time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		NotifyWeekday: day,
		NotifyHour:    hour,
	}
}

func newTestNotifier(t *testing.T, repo store.Repo, sender Sender) (*Notifier, *scheduler.Registry) {
	t.Helper()
	reg := scheduler.New(zap.NewNop())
	t.Cleanup(reg.Stop)
	return New(repo, reg, sender, zap.NewNop()), reg
}

func TestStartWithZeroUsers(t *testing.T) {
	n, reg := newTestNotifier(t, newFakeRepo(), &fakeSender{})

	require.NoError(t, n.Start(context.Background()))
	require.True(t, reg.IsRunning())
	require.Equal(t, 0, reg.Len())
}

func TestStartReplaysAllUsers(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, profile(1, domain.Monday, 8)))
	require.NoError(t, repo.Upsert(ctx, profile(2, domain.Saturday, 12)))

	n, reg := newTestNotifier(t, repo, &fakeSender{})
	require.NoError(t, n.Start(ctx))

	require.Equal(t, 2, reg.Len())
	require.True(t, reg.Scheduled(1))
	require.True(t, reg.Scheduled(2))
}

func TestStartListFailureIsFatal(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("disk gone")

	n, _ := newTestNotifier(t, repo, &fakeSender{})
	err := n.Start(context.Background())
	require.ErrorIs(t, err, ErrStartup)
}

func TestRescheduleMissingUserIsBenign(t *testing.T) {
	n, reg := newTestNotifier(t, newFakeRepo(), &fakeSender{})

	require.NoError(t, n.Reschedule(context.Background(), 404))
	require.Equal(t, 0, reg.Len())
}

func TestRescheduleReplacesJob(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, profile(1, domain.Wednesday, 9)))

	n, reg := newTestNotifier(t, repo, &fakeSender{})
	require.NoError(t, n.Reschedule(ctx, 1))
	require.Equal(t, 1, reg.Len())

	// Edit preferences, reschedule again: still exactly one job.
	require.NoError(t, repo.Upsert(ctx, profile(1, domain.Friday, 18)))
	require.NoError(t, n.Reschedule(ctx, 1))
	require.Equal(t, 1, reg.Len())
	require.True(t, reg.Scheduled(1))
}

func TestUnschedule(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, profile(1, domain.Monday, 10)))

	n, reg := newTestNotifier(t, repo, &fakeSender{})
	require.NoError(t, n.Reschedule(ctx, 1))
	require.True(t, reg.Scheduled(1))

	n.Unschedule(1)
	require.False(t, reg.Scheduled(1))
}

func TestDeliverSuccessRecordsDate(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, profile(1, domain.Monday, 10)))

	sender := &fakeSender{}
	n, _ := newTestNotifier(t, repo, sender)
	today := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return today }

	n.deliver(1)

	require.Len(t, sender.sent, 1)
	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got.LastNotifiedOn)
	require.True(t, got.LastNotifiedOn.Equal(domain.DateOf(today)))
}

func TestDeliverSendFailureLeavesStateUntouched(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, profile(1, domain.Monday, 10)))

	sender := &fakeSender{fail: true}
	n, reg := newTestNotifier(t, repo, sender)
	require.NoError(t, n.Reschedule(ctx, 1))

	n.deliver(1)

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, got.LastNotifiedOn, "failed send must not record a delivery")
	require.True(t, reg.Scheduled(1), "failed send must not drop the job")

	// Next week the send works and delivery is recorded.
	sender.fail = false
	n.deliver(1)
	got, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got.LastNotifiedOn)
	require.Len(t, sender.sent, 1)
}

func TestDeliverMissingUserIsBenign(t *testing.T) {
	sender := &fakeSender{}
	n, _ := newTestNotifier(t, newFakeRepo(), sender)

	n.deliver(404)
	require.Empty(t, sender.sent)
}
