package analytics

import (
	"time"

	"github.com/2beens/activeweek/internal/workouts"
)

type ActivityStat struct {
	Activity          workouts.Activity `json:"activity"`
	Count             int               `json:"count"`
	Duration          int               `json:"duration"`
	DurationFormatted string            `json:"durationFormatted"`
}

type PeriodReport struct {
	Period          Period         `json:"period"`
	Label           string         `json:"label"`
	Start           time.Time      `json:"start"`
	End             time.Time      `json:"end"`
	TotalWorkouts   int            `json:"totalWorkouts"`
	TotalDuration   int            `json:"totalDuration"`
	AverageDuration int            `json:"averageDuration"`
	ActivityStats   []ActivityStat `json:"activityStats"`
}

type Reports struct {
	Weekly  PeriodReport `json:"weekly"`
	Monthly PeriodReport `json:"monthly"`
	Yearly  PeriodReport `json:"yearly"`
}

// Report summarizes the records of the period containing anchor. The
// per-activity breakdown counts primary activities only.
func Report(records []workouts.Record, period Period, anchor time.Time) PeriodReport {
	start, end := Window(period, anchor)
	inWindow := FilterRange(records, start, end)
	total := primaryTotal(inWindow)

	return PeriodReport{
		Period:          period,
		Label:           PeriodLabel(period, start, end),
		Start:           start,
		End:             end,
		TotalWorkouts:   len(inWindow),
		TotalDuration:   total,
		AverageDuration: average(total, len(inWindow)),
		ActivityStats:   activityStats(inWindow),
	}
}

func BuildReports(records []workouts.Record, anchor time.Time) Reports {
	return Reports{
		Weekly:  Report(records, PeriodWeek, anchor),
		Monthly: Report(records, PeriodMonth, anchor),
		Yearly:  Report(records, PeriodYear, anchor),
	}
}

// PeriodLabel renders "Jan 1 - Jan 7, 2024", "January 2024" or "2024".
func PeriodLabel(period Period, start, end time.Time) string {
	switch period {
	case PeriodWeek:
		return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
	case PeriodMonth:
		return start.Format("January 2006")
	default:
		return start.Format("2006")
	}
}

func activityStats(records []workouts.Record) []ActivityStat {
	stats := []ActivityStat{}
	index := map[workouts.Activity]int{}
	for _, r := range records {
		i, ok := index[r.Activity]
		if !ok {
			i = len(stats)
			index[r.Activity] = i
			stats = append(stats, ActivityStat{Activity: r.Activity})
		}
		stats[i].Count++
		stats[i].Duration += r.Duration
	}
	for i := range stats {
		stats[i].DurationFormatted = FormatDuration(stats[i].Duration)
	}
	return stats
}
