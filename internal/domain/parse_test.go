package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseBirthDate(t *testing.T) {
	today := date(2024, time.June, 1)

	got, err := ParseBirthDate("01.01.2000", today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(date(2000, time.January, 1)) {
		t.Fatalf("want 2000-01-01, got %v", got)
	}

	if _, err := ParseBirthDate("02.06.2024", today); !errors.Is(err, ErrFutureBirthDate) {
		t.Fatalf("want ErrFutureBirthDate, got %v", err)
	}
	if _, err := ParseBirthDate("2000-01-01", today); !errors.Is(err, ErrBadBirthDate) {
		t.Fatalf("want ErrBadBirthDate, got %v", err)
	}
	if _, err := ParseBirthDate("31.02.2000", today); !errors.Is(err, ErrBadBirthDate) {
		t.Fatalf("want ErrBadBirthDate for impossible date, got %v", err)
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]Weekday{
		"mon":     Monday,
		"Wed":     Wednesday,
		"friday":  Friday,
		" Sunday": Sunday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		if err != nil {
			t.Fatalf("ParseWeekday(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseWeekday(%q): want %v, got %v", in, want, got)
		}
	}
	if _, err := ParseWeekday("someday"); !errors.Is(err, ErrBadWeekday) {
		t.Fatalf("want ErrBadWeekday, got %v", err)
	}
}

func TestWeekdayTokenRoundTrip(t *testing.T) {
	for d := Monday; d <= Sunday; d++ {
		back, err := ParseWeekday(d.Token())
		if err != nil {
			t.Fatalf("token %q did not parse: %v", d.Token(), err)
		}
		if back != d {
			t.Fatalf("token round trip: want %v, got %v", d, back)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	h, m, err := ParseTimeOfDay("09:00")
	if err != nil || h != 9 || m != 0 {
		t.Fatalf("want 9:00, got %d:%d err=%v", h, m, err)
	}
	h, m, err = ParseTimeOfDay("23:59")
	if err != nil || h != 23 || m != 59 {
		t.Fatalf("want 23:59, got %d:%d err=%v", h, m, err)
	}
	for _, in := range []string{"24:00", "12:60", "noon", "12", "1:2:3"} {
		if _, _, err := ParseTimeOfDay(in); err == nil {
			t.Fatalf("ParseTimeOfDay(%q): expected error", in)
		}
	}
}

func TestValidate(t *testing.T) {
	today := date(2024, time.June, 1)
	p := &UserProfile{
		UserID:        1,
		CustomName:    "Alex",
		BirthDate:     date(2000, time.January, 1),
		NotifyWeekday: Wednesday,
		NotifyHour:    9,
	}
	if err := p.Validate(today); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}

	bad := *p
	bad.BirthDate = date(2030, time.January, 1)
	if err := bad.Validate(today); !errors.Is(err, ErrFutureBirthDate) {
		t.Fatalf("want ErrFutureBirthDate, got %v", err)
	}

	bad = *p
	bad.NotifyHour = 24
	if err := bad.Validate(today); !errors.Is(err, ErrBadHour) {
		t.Fatalf("want ErrBadHour, got %v", err)
	}

	bad = *p
	bad.NotifyWeekday = Weekday(9)
	if err := bad.Validate(today); !errors.Is(err, ErrBadWeekday) {
		t.Fatalf("want ErrBadWeekday, got %v", err)
	}
}
