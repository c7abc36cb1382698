package notify

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/RockerzXY/weekscounter-bot/internal/domain"
)

// Render produces the weekly message for a profile. Deterministic for a
// fixed profile, today and phrase; only the phrase choice varies between
// deliveries.
func Render(p *domain.UserProfile, today time.Time, phrase string) string {
	weeks := domain.WeeksLived(p.BirthDate, today)
	return fmt.Sprintf(
		"<b>%s</b>, today you are living week <b>%d</b> of your <b>%d</b>.\n<i>%s</i>",
		p.CustomName, weeks, domain.TotalWeeks, phrase,
	)
}

// Compose renders the message with a uniformly random phrase from the set.
func Compose(p *domain.UserProfile, now time.Time, phrases []string) string {
	return Render(p, now, phrases[rand.IntN(len(phrases))])
}
