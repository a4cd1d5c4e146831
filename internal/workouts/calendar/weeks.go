package calendar

import (
	"time"

	"github.com/2beens/activeweek/internal/workouts/analytics"
)

// WeekNumber numbers Monday-started weeks within a year; week 1 is the week
// containing January 1st, so the last days of December may belong to week 1
// of the following year.
func WeekNumber(t time.Time) int {
	start := analytics.StartOfWeek(t)
	loc := t.Location()

	nextWeekOne := analytics.StartOfWeek(time.Date(t.Year()+1, time.January, 1, 0, 0, 0, 0, loc))
	if !start.Before(nextWeekOne) {
		return 1
	}
	weekOne := analytics.StartOfWeek(time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc))
	return daysBetween(weekOne, start)/7 + 1
}

// StartOfWeekNumber returns Monday midnight of the given week of year.
func StartOfWeekNumber(year, week int, loc *time.Location) time.Time {
	if week < 1 {
		week = 1
	}
	weekOne := analytics.StartOfWeek(time.Date(year, time.January, 1, 0, 0, 0, 0, loc))
	return weekOne.AddDate(0, 0, 7*(week-1))
}

// WeekRangeText renders the week containing t as "Mar 4 - Mar 10, 2024".
func WeekRangeText(t time.Time) string {
	start, end := analytics.Window(analytics.PeriodWeek, t)
	return analytics.PeriodLabel(analytics.PeriodWeek, start, end)
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
