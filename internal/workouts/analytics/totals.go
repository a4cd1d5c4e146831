package analytics

import (
	"math"

	"github.com/2beens/activeweek/internal/workouts"
)

// SecondaryWeight is the share of a secondary activity's time credited to it.
const SecondaryWeight = 0.3

const chartLabelMaxLen = 12

type ActivityTotal struct {
	Name             string `json:"name"`
	ChartLabel       string `json:"chartLabel"`
	Minutes          int    `json:"minutes"`
	MinutesFormatted string `json:"minutesFormatted"`
	Color            string `json:"color"`

	raw float64
}

type Share struct {
	ActivityTotal
	Percentage float64 `json:"percentage"`
}

// ActivityTotals credits each record's primary duration to its display name and
// the weighted secondary duration to the secondary display name. Results keep the
// order in which names were first seen; minutes are rounded once per name.
func ActivityTotals(records []workouts.Record) []ActivityTotal {
	var totals []ActivityTotal
	index := map[string]int{}

	add := func(name string, minutes float64) {
		i, ok := index[name]
		if !ok {
			i = len(totals)
			index[name] = i
			totals = append(totals, ActivityTotal{Name: name})
		}
		totals[i].raw += minutes
	}

	for _, r := range records {
		add(r.DisplayName(), float64(r.Duration))
		if r.HasSecondary() {
			add(r.SecondaryDisplayName(), secondaryMinutes(r)*SecondaryWeight)
		}
	}

	for i := range totals {
		t := &totals[i]
		t.Minutes = int(math.Round(t.raw))
		t.MinutesFormatted = FormatDuration(t.Minutes)
		t.ChartLabel = chartLabel(t.Name)
		t.Color = workouts.ColorFor(t.Name)
	}
	return totals
}

// Distribution expresses every activity total as a percentage (one decimal) of
// the sum of all activity totals.
func Distribution(records []workouts.Record) []Share {
	totals := ActivityTotals(records)
	var sum float64
	for _, t := range totals {
		sum += t.raw
	}

	shares := make([]Share, 0, len(totals))
	for _, t := range totals {
		share := Share{ActivityTotal: t}
		if sum > 0 {
			share.Percentage = math.Round(t.raw/sum*1000) / 10
		}
		shares = append(shares, share)
	}
	return shares
}

// secondaryMinutes falls back to the primary duration for records logged
// before secondary durations existed.
func secondaryMinutes(r workouts.Record) float64 {
	if r.SecondaryDuration > 0 {
		return float64(r.SecondaryDuration)
	}
	return float64(r.Duration)
}

func chartLabel(name string) string {
	runes := []rune(name)
	if len(runes) <= chartLabelMaxLen {
		return name
	}
	return string(runes[:chartLabelMaxLen]) + "..."
}
