package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RockerzXY/weekscounter-bot/internal/domain"
)

// scanProfile converts raw column values into a domain.UserProfile.
func scanProfile(
	id int64,
	username, fullName, customName string,
	birthDate string,
	registeredAt int64,
	weekdayTok, notifyTime string,
	lastNotified sql.NullString,
) (*domain.UserProfile, error) {
	birth, err := domain.ParseDate(birthDate)
	if err != nil {
		return nil, fmt.Errorf("row %d: birth_date: %w", id, err)
	}
	weekday, err := domain.ParseWeekday(weekdayTok)
	if err != nil {
		return nil, fmt.Errorf("row %d: notify_weekday: %w", id, err)
	}
	hour, minute, err := domain.ParseTimeOfDay(notifyTime)
	if err != nil {
		return nil, fmt.Errorf("row %d: notify_time: %w", id, err)
	}

	p := &domain.UserProfile{
		UserID:        id,
		Username:      username,
		FullName:      fullName,
		CustomName:    customName,
		BirthDate:     birth,
		RegisteredAt:  time.Unix(registeredAt, 0).UTC(),
		NotifyWeekday: weekday,
		NotifyHour:    hour,
		NotifyMinute:  minute,
	}
	if lastNotified.Valid {
		d, err := domain.ParseDate(lastNotified.String)
		if err != nil {
			return nil, fmt.Errorf("row %d: last_notified_on: %w", id, err)
		}
		p.LastNotifiedOn = &d
	}
	return p, nil
}
