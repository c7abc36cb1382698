package domain

import (
	"errors"
	"fmt"
	"time"
)

// UserProfile holds a user's identity and weekly notification slot.
// UserID and RegisteredAt never change after the first insert; every
// other field may be overwritten wholesale on re-registration.
type UserProfile struct {
	UserID         int64
	Username       string // raw Telegram handle
	FullName       string
	CustomName     string // how the user asked to be addressed
	BirthDate      time.Time
	RegisteredAt   time.Time
	NotifyWeekday  Weekday
	NotifyHour     int
	NotifyMinute   int
	LastNotifiedOn *time.Time // date of last successful delivery, nil until first
}

var (
	ErrFutureBirthDate = errors.New("birth date is in the future")
	ErrBadHour         = errors.New("hour out of range")
	ErrBadMinute       = errors.New("minute out of range")
)

// Validate checks field invariants. today is passed in so the caller
// controls the clock.
func (p *UserProfile) Validate(today time.Time) error {
	if p.BirthDate.After(DateOf(today)) {
		return ErrFutureBirthDate
	}
	if !p.NotifyWeekday.Valid() {
		return fmt.Errorf("%w: %d", ErrBadWeekday, int(p.NotifyWeekday))
	}
	if p.NotifyHour < 0 || p.NotifyHour > 23 {
		return fmt.Errorf("%w: %d", ErrBadHour, p.NotifyHour)
	}
	if p.NotifyMinute < 0 || p.NotifyMinute > 59 {
		return fmt.Errorf("%w: %d", ErrBadMinute, p.NotifyMinute)
	}
	return nil
}

// DateOf truncates t to midnight UTC, keeping only the calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
