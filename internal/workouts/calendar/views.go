package calendar

import (
	"sort"
	"time"

	"github.com/2beens/activeweek/internal/workouts"
	"github.com/2beens/activeweek/internal/workouts/analytics"
)

type Day struct {
	Date     time.Time         `json:"date"`
	InMonth  bool              `json:"inMonth"`
	IsToday  bool              `json:"isToday"`
	Label    string            `json:"label,omitempty"`
	Workouts []workouts.Record `json:"workouts"`
}

type MonthView struct {
	Title string  `json:"title"`
	Weeks [][]Day `json:"weeks"`
}

type WeekView struct {
	Number    int    `json:"number"`
	RangeText string `json:"rangeText"`
	Days      []Day  `json:"days"`
}

type ListView struct {
	Title string `json:"title"`
	Days  []Day  `json:"days"`
}

// ForDay returns the records dated on the calendar day of day, oldest first.
func ForDay(records []workouts.Record, day time.Time) []workouts.Record {
	out := []workouts.Record{}
	for _, r := range records {
		if sameDay(day, r.Date) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// MonthGrid lays out the month containing month as full Monday..Sunday rows,
// padded with days of the neighbouring months.
func MonthGrid(month time.Time, records []workouts.Record, now time.Time) MonthView {
	first, last := analytics.Window(analytics.PeriodMonth, month)
	gridStart := analytics.StartOfWeek(first)
	_, gridEnd := analytics.Window(analytics.PeriodWeek, last)

	view := MonthView{Title: first.Format("January 2006")}
	var week []Day
	for d := gridStart; d.Before(gridEnd); d = d.AddDate(0, 0, 1) {
		week = append(week, Day{
			Date:     d,
			InMonth:  d.Month() == first.Month(),
			IsToday:  sameDay(d, now),
			Workouts: ForDay(records, d),
		})
		if len(week) == 7 {
			view.Weeks = append(view.Weeks, week)
			week = nil
		}
	}
	return view
}

// WeekStrip returns the seven days, Monday first, of the week containing anchor.
func WeekStrip(anchor time.Time, records []workouts.Record, now time.Time) WeekView {
	start := analytics.StartOfWeek(anchor)
	view := WeekView{
		Number:    WeekNumber(anchor),
		RangeText: WeekRangeText(anchor),
		Days:      make([]Day, 0, 7),
	}
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		view.Days = append(view.Days, Day{
			Date:     d,
			InMonth:  d.Month() == anchor.Month(),
			IsToday:  sameDay(d, now),
			Workouts: ForDay(records, d),
		})
	}
	return view
}

// MonthList returns every day of the month containing month with its records and label.
func MonthList(month time.Time, records []workouts.Record, now time.Time) ListView {
	first, last := analytics.Window(analytics.PeriodMonth, month)
	view := ListView{Title: first.Format("January 2006")}
	for d := first; d.Before(last); d = d.AddDate(0, 0, 1) {
		view.Days = append(view.Days, Day{
			Date:     d,
			InMonth:  true,
			IsToday:  sameDay(d, now),
			Label:    DateLabel(d, now),
			Workouts: ForDay(records, d),
		})
	}
	return view
}
