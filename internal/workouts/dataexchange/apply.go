package dataexchange

import (
	"fmt"

	"github.com/2beens/activeweek/internal/workouts"
)

type recordStore interface {
	All() []workouts.Record
	ReplaceAll(records []workouts.Record)
}

type Mode string

const (
	// ModeReplace discards the current collection.
	ModeReplace Mode = "replace"
	// ModeMerge overwrites records with matching ids and appends the rest.
	ModeMerge Mode = "merge"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeReplace, ModeMerge:
		return m, nil
	case "":
		return ModeReplace, nil
	default:
		return "", fmt.Errorf("unknown import mode %q", s)
	}
}

// Apply installs the accepted records into the store in one mutation and
// returns the resulting collection size.
func Apply(store recordStore, result *ImportResult, mode Mode) (int, error) {
	if result == nil || len(result.Records) == 0 {
		return 0, ErrNoValidRecords
	}

	if mode == ModeReplace {
		store.ReplaceAll(result.Records)
		return len(result.Records), nil
	}

	merged := store.All()
	index := make(map[string]int, len(merged))
	for i, r := range merged {
		index[r.ID] = i
	}
	for _, r := range result.Records {
		if i, ok := index[r.ID]; ok {
			merged[i] = r
			continue
		}
		index[r.ID] = len(merged)
		merged = append(merged, r)
	}
	store.ReplaceAll(merged)
	return len(merged), nil
}
