package cache

import (
	"time"
)

// TimeUntilNextClose returns the duration until the next 16:00 in New York,
// when the day's closing prices are final. Weekends are not skipped.
func TimeUntilNextClose(now time.Time) time.Duration {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.FixedZone("EST", -5*60*60)
	}
	now = now.In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), 16, 0, 0, 0, loc)
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
