package domain

import "time"

// TotalWeeks is the "4000 weeks" life expectancy the bot counts against
// (~70 years). Weeks lived are not capped at this value.
const TotalWeeks = 4000

// WeeksLived returns the number of full weeks between birthDate and today.
// Both arguments are truncated to calendar dates first, so partial days
// never skew the count. Never negative for birthDate <= today.
func WeeksLived(birthDate, today time.Time) int {
	days := int(DateOf(today).Sub(DateOf(birthDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 7
}
