package analytics

import (
	"math"

	"github.com/2beens/activeweek/internal/workouts"
)

const NoActivity = "None"

type MostActive struct {
	Activity string `json:"activity"`
	Minutes  int    `json:"minutes"`
}

type Summary struct {
	TotalWorkouts   int        `json:"totalWorkouts"`
	TotalDuration   int        `json:"totalDuration"`
	AverageDuration int        `json:"averageDuration"`
	MostActive      MostActive `json:"mostActive"`
}

// Summarize computes the headline numbers. The total is the plain sum of primary
// durations; the most active activity is taken from the weighted per-activity totals.
func Summarize(records []workouts.Record) Summary {
	total := primaryTotal(records)
	summary := Summary{
		TotalWorkouts:   len(records),
		TotalDuration:   total,
		AverageDuration: average(total, len(records)),
		MostActive:      MostActive{Activity: NoActivity},
	}

	var best float64
	for _, t := range ActivityTotals(records) {
		if t.raw > best {
			best = t.raw
			summary.MostActive = MostActive{Activity: t.Name, Minutes: t.Minutes}
		}
	}
	return summary
}

func primaryTotal(records []workouts.Record) int {
	total := 0
	for _, r := range records {
		total += r.Duration
	}
	return total
}

func average(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}
