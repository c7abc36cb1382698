package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadBirthDate = errors.New("invalid birth date")
	ErrBadTime      = errors.New("invalid time")
)

const birthDateLayout = "02.01.2006"

// ParseBirthDate parses user input in DD.MM.YYYY form and rejects dates
// after today. The result is a date at midnight UTC.
func ParseBirthDate(s string, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected DD.MM.YYYY", ErrBadBirthDate, s)
	}
	d := DateOf(t)
	if d.After(DateOf(today)) {
		return time.Time{}, ErrFutureBirthDate
	}
	return d, nil
}

// ParseHour parses a bare hour ("0".."23") from the hour keyboard.
func ParseHour(s string) (int, error) {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrBadHour, s)
	}
	return h, nil
}

// ParseTimeOfDay parses "HH:MM" as stored in the notify_time column.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q, expected HH:MM", ErrBadTime, s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: bad hour in %q", ErrBadTime, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: bad minute in %q", ErrBadTime, s)
	}
	return hour, minute, nil
}

// FormatTimeOfDay renders the notify_time column value.
func FormatTimeOfDay(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// FormatDate renders a date as stored in birth_date / last_notified_on.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses a stored YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadBirthDate, s)
	}
	return DateOf(t), nil
}
