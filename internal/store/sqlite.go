package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/RockerzXY/weekscounter-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single writer; SQLite serializes per-row access for us.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// Exists reports whether a row for userID is present.
func (r *SQLiteRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE user_id = ?`, userID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %d: %w", userID, err)
	}
	return true, nil
}

// Upsert inserts a new profile or overwrites the mutable fields of an
// existing one. registered_at is written only on insert; last_notified_on
// is never touched here.
func (r *SQLiteRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	if p == nil {
		return errors.New("nil profile")
	}

	registered := p.RegisteredAt
	if registered.IsZero() {
		registered = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			user_id, username, full_name, custom_name,
			birth_date, registered_at, notify_weekday, notify_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			username       = excluded.username,
			full_name      = excluded.full_name,
			custom_name    = excluded.custom_name,
			birth_date     = excluded.birth_date,
			notify_weekday = excluded.notify_weekday,
			notify_time    = excluded.notify_time`,
		p.UserID, p.Username, p.FullName, p.CustomName,
		domain.FormatDate(p.BirthDate), registered.Unix(),
		p.NotifyWeekday.Token(),
		domain.FormatTimeOfDay(p.NotifyHour, p.NotifyMinute),
	)
	if err != nil {
		return fmt.Errorf("upsert %d: %w", p.UserID, err)
	}
	return nil
}

// Get returns the profile for userID, or ErrNotFound.
func (r *SQLiteRepo) Get(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, username, full_name, custom_name,
		       birth_date, registered_at, notify_weekday, notify_time,
		       last_notified_on
		FROM users
		WHERE user_id = ?`,
		userID,
	)

	var (
		id           int64
		username     string
		fullName     string
		customName   string
		birthDate    string
		registeredAt int64
		weekdayTok   string
		notifyTime   string
		lastNotified sql.NullString
	)

	if err := row.Scan(
		&id, &username, &fullName, &customName,
		&birthDate, &registeredAt, &weekdayTok, &notifyTime,
		&lastNotified,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %d: %w", userID, err)
	}

	return scanProfile(id, username, fullName, customName,
		birthDate, registeredAt, weekdayTok, notifyTime, lastNotified)
}

// ListUserIDs returns the ids of all registered users.
func (r *SQLiteRepo) ListUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return ids, nil
}

// RecordDelivery stamps last_notified_on for a user. Writing the same
// date twice is a no-op the second time.
func (r *SQLiteRepo) RecordDelivery(ctx context.Context, userID int64, day time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET last_notified_on = ?
		WHERE user_id = ?`,
		domain.FormatDate(day), userID,
	)
	if err != nil {
		return fmt.Errorf("record delivery %d: %w", userID, err)
	}
	return nil
}

// Remove deletes a user's row. Removing an absent user is not an error.
func (r *SQLiteRepo) Remove(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("remove %d: %w", userID, err)
	}
	return nil
}
