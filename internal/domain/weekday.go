package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weekday is the notification weekday. It is a closed enum so that an
// invalid value cannot reach the scheduler or the database.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var ErrBadWeekday = errors.New("invalid weekday")

// Storage tokens, index-aligned with the Weekday constants.
var weekdayTokens = [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Valid reports whether d is one of the seven defined weekdays.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Token returns the short storage token ("mon".."sun").
func (d Weekday) Token() string {
	if !d.Valid() {
		return ""
	}
	return weekdayTokens[d]
}

// String returns the full English name.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Time maps d to the stdlib's time.Weekday (Sunday == 0).
func (d Weekday) Time() time.Weekday {
	if d == Sunday {
		return time.Sunday
	}
	return time.Weekday(int(d) + 1)
}

// ParseWeekday accepts a storage token or a full name, case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, tok := range weekdayTokens {
		if s == tok || s == strings.ToLower(weekdayNames[i]) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadWeekday, s)
}
