package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/activeweek/internal/workouts"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

var ErrUnknownPeriod = errors.New("unknown period")

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday midnight of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// Window returns the inclusive bounds of the period containing anchor, in the
// anchor's location. End is the last nanosecond of the period.
func Window(period Period, anchor time.Time) (start, end time.Time) {
	y, m, _ := anchor.Date()
	loc := anchor.Location()

	var next time.Time
	switch period {
	case PeriodWeek:
		start = StartOfWeek(anchor)
		next = start.AddDate(0, 0, 7)
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(0, 1, 0)
	default:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(1, 0, 0)
	}
	return start, next.Add(-time.Nanosecond)
}

// Within reports whether t lies in [start, end].
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// FilterWindow returns the records dated inside the period containing anchor,
// keeping their collection order.
func FilterWindow(records []workouts.Record, period Period, anchor time.Time) []workouts.Record {
	start, end := Window(period, anchor)
	return FilterRange(records, start, end)
}

func FilterRange(records []workouts.Record, start, end time.Time) []workouts.Record {
	var out []workouts.Record
	for _, r := range records {
		if Within(r.Date, start, end) {
			out = append(out, r)
		}
	}
	return out
}
