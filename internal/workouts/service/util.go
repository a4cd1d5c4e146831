package service

import (
	"sort"

	"github.com/2beens/activeweek/internal/workouts"
)

// sortByDate sorts in place, oldest first; nil becomes an empty slice.
func sortByDate(records []workouts.Record) []workouts.Record {
	if records == nil {
		return []workouts.Record{}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records
}
