package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/RockerzXY/weekscounter-bot/internal/domain"
)

// Registry keeps at most one recurring weekly job per user on top of a
// cron runner. It owns no durable state: the Notifier rebuilds it from
// the store on startup.
type Registry struct {
	log  *zap.Logger
	cron *cron.Cron

	mu      sync.Mutex
	entries map[int64]cron.EntryID
	running bool
}

// Weekday tokens in cron's DOW field, indexed by domain.Weekday.
var cronDays = [7]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// New creates a stopped Registry. Jobs match against local wall-clock
// time; a panicking callback is recovered and its entry stays scheduled.
func New(log *zap.Logger) *Registry {
	return &Registry{
		log: log,
		cron: cron.New(
			cron.WithChain(cron.Recover(cron.PrintfLogger(zap.NewStdLog(log)))),
		),
		entries: make(map[int64]cron.EntryID),
	}
}

// Start begins firing. Calling Start on a running Registry is a no-op.
func (r *Registry) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.cron.Start()
	r.running = true
	r.log.Info("job registry started")
}

// IsRunning reports whether the firing loop is active.
func (r *Registry) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Stop halts firing. Jobs already mid-callback finish on their own.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.cron.Stop()
	r.running = false
	r.log.Info("job registry stopped")
}

// Schedule installs the weekly job for userID, replacing any existing
// one. The removal and the insert happen under one lock, so there is no
// instant with two live jobs for the same user, and a replaced job can
// no longer fire once Schedule has begun.
func (r *Registry) Schedule(userID int64, day domain.Weekday, hour, minute int, cb func(userID int64)) error {
	spec := cronSpec(day, hour, minute)

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.entries[userID]; ok {
		r.cron.Remove(old)
		delete(r.entries, userID)
	}

	id, err := r.cron.AddFunc(spec, func() { cb(userID) })
	if err != nil {
		return fmt.Errorf("schedule user %d (%q): %w", userID, spec, err)
	}
	r.entries[userID] = id

	r.log.Info("job scheduled",
		zap.Int64("user_id", userID),
		zap.String("spec", spec),
	)
	return nil
}

// Cancel removes the user's job if present; no-op otherwise.
func (r *Registry) Cancel(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.entries[userID]
	if !ok {
		return
	}
	r.cron.Remove(id)
	delete(r.entries, userID)
	r.log.Info("job cancelled", zap.Int64("user_id", userID))
}

// Scheduled reports whether the user currently has a live job.
func (r *Registry) Scheduled(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[userID]
	return ok
}

// Len returns the number of live jobs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// cronSpec renders the 5-field spec for a weekly slot, e.g. "0 9 * * WED".
// Inputs come from the validated profile, so the spec always parses.
func cronSpec(day domain.Weekday, hour, minute int) string {
	return fmt.Sprintf("%d %d * * %s", minute, hour, cronDays[day])
}
