package calendar

import (
	"time"

	"github.com/2beens/activeweek/internal/workouts/analytics"
)

// DateLabel is the list view heading for a day: "Today", "Yesterday", the
// weekday name for the rest of the current week, the full date otherwise.
func DateLabel(day, now time.Time) string {
	day = day.In(now.Location())
	switch {
	case sameDay(day, now):
		return "Today"
	case sameDay(day, now.AddDate(0, 0, -1)):
		return "Yesterday"
	case sameDay(analytics.StartOfWeek(day), analytics.StartOfWeek(now)):
		return day.Format("Monday")
	default:
		return day.Format("Jan 2, 2006")
	}
}
