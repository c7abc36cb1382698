package store

import (
	"context"
	"errors"
	"time"

	"github.com/RockerzXY/weekscounter-bot/internal/domain"
)

// ErrNotFound is returned by Get for an unknown user id.
var ErrNotFound = errors.New("user not found")

// Repo defines durable storage for user profiles. It is the single
// source of truth the scheduler is rebuilt from on startup.
type Repo interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	// Upsert inserts the profile or overwrites all mutable fields of an
	// existing row. registered_at and last_notified_on are preserved on
	// update; only RecordDelivery writes the latter.
	Upsert(ctx context.Context, p *domain.UserProfile) error
	Get(ctx context.Context, userID int64) (*domain.UserProfile, error)
	// ListUserIDs enumerates all registered users, in no particular
	// order. Used only for the startup replay.
	ListUserIDs(ctx context.Context) ([]int64, error)
	// RecordDelivery stamps the date of a successful delivery.
	// Idempotent for a repeated date.
	RecordDelivery(ctx context.Context, userID int64, day time.Time) error
	Remove(ctx context.Context, userID int64) error
	Close() error
}
