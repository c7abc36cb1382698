package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/RockerzXY/weekscounter-bot/assets"
	"github.com/RockerzXY/weekscounter-bot/internal/domain"
	"github.com/RockerzXY/weekscounter-bot/internal/store"
)

// ErrStartup marks a failure that must abort process startup: the job
// registry could not be brought up from the store.
var ErrStartup = errors.New("notifier startup failed")

// Sender delivers one rendered message. telegram.Sender implements it.
type Sender interface {
	Send(chatID int64, text string) error
}

// Registry is the scheduling surface the notifier drives.
// scheduler.Registry implements it.
type Registry interface {
	Start()
	IsRunning() bool
	Schedule(userID int64, day domain.Weekday, hour, minute int, cb func(userID int64)) error
	Cancel(userID int64)
}

// Notifier orchestrates the job registry against the user store: bulk
// replay on startup, per-user rescheduling on preference change, and the
// fire-time delivery callback.
type Notifier struct {
	repo    store.Repo
	reg     Registry
	sender  Sender
	log     *zap.Logger
	phrases []string
	now     func() time.Time
}

func New(repo store.Repo, reg Registry, sender Sender, log *zap.Logger) *Notifier {
	return &Notifier{
		repo:    repo,
		reg:     reg,
		sender:  sender,
		log:     log,
		phrases: assets.Phrases(),
		now:     time.Now,
	}
}

// Start brings the registry up and replays every stored user into it.
// Jobs are not persisted; this replay is what reconstructs them after a
// restart. Fires missed while the process was down are skipped, not
// caught up. An enumeration failure is fatal; a single user failing to
// reschedule is logged and skipped so it cannot hold the others back.
func (n *Notifier) Start(ctx context.Context) error {
	if !n.reg.IsRunning() {
		n.reg.Start()
	}

	ids, err := n.repo.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: list users: %v", ErrStartup, err)
	}
	if len(ids) == 0 {
		n.log.Warn("no users to schedule")
		return nil
	}

	scheduled := 0
	for _, id := range ids {
		if err := n.Reschedule(ctx, id); err != nil {
			n.log.Error("startup reschedule failed",
				zap.Int64("user_id", id), zap.Error(err))
			continue
		}
		scheduled++
	}
	n.log.Info("notifications scheduled", zap.Int("users", scheduled))
	return nil
}

// Reschedule replaces the user's job with one reflecting the stored
// preferences. A missing user is a benign skip: it covers the race where
// the user was deleted between enumeration and scheduling. Callers must
// upsert before rescheduling or the job is built from stale data.
func (n *Notifier) Reschedule(ctx context.Context, userID int64) error {
	p, err := n.repo.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		n.log.Info("reschedule skipped, user not found", zap.Int64("user_id", userID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("reschedule: %w", err)
	}

	return n.reg.Schedule(p.UserID, p.NotifyWeekday, p.NotifyHour, p.NotifyMinute, n.deliver)
}

// Unschedule drops the user's job, if any. Used when a profile is deleted.
func (n *Notifier) Unschedule(userID int64) {
	n.reg.Cancel(userID)
}

// ComposeFor renders the current-week message for a profile on demand.
func (n *Notifier) ComposeFor(p *domain.UserProfile) string {
	return Compose(p, n.now(), n.phrases)
}

// deliver is the fire callback. A user deleted after scheduling is a
// warning, not an error. A failed send is logged and absorbed: the job
// stays installed and next week's fire is the retry.
func (n *Notifier) deliver(userID int64) {
	ctx := context.Background()

	p, err := n.repo.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		n.log.Warn("delivery skipped, user not found", zap.Int64("user_id", userID))
		return
	}
	if err != nil {
		n.log.Error("delivery aborted, store read failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	today := n.now()
	text := Compose(p, today, n.phrases)

	if err := n.sender.Send(userID, text); err != nil {
		n.log.Error("delivery failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	if err := n.repo.RecordDelivery(ctx, userID, domain.DateOf(today)); err != nil {
		n.log.Error("record delivery failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	n.log.Info("notification delivered", zap.Int64("user_id", userID))
}
