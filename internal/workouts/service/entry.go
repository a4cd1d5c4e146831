package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/activeweek/internal/workouts"
	"github.com/2beens/activeweek/internal/workouts/form"
)

// Entry is a complete workout form submission. Updates replace every field
// with the entry's values; a zero Date keeps the current date.
type Entry struct {
	Date               time.Time `json:"date"`
	Activity           string    `json:"activity"`
	Duration           int       `json:"duration"`
	ExerciseType       string    `json:"exerciseType,omitempty"`
	CustomActivityName string    `json:"customActivityName,omitempty"`

	SecondaryActivity           string `json:"secondaryActivity,omitempty"`
	SecondaryDuration           int    `json:"secondaryDuration,omitempty"`
	PPLSplit                    string `json:"pplSplit,omitempty"`
	CustomSecondaryActivityName string `json:"customSecondaryActivityName,omitempty"`
}

// EntryFrom turns a record back into a form submission.
func EntryFrom(r workouts.Record) Entry {
	return Entry{
		Date:                        r.Date,
		Activity:                    string(r.Activity),
		Duration:                    r.Duration,
		ExerciseType:                string(r.ExerciseType),
		CustomActivityName:          r.CustomActivityName,
		SecondaryActivity:           string(r.SecondaryActivity),
		SecondaryDuration:           r.SecondaryDuration,
		PPLSplit:                    string(r.PPLSplit),
		CustomSecondaryActivityName: r.CustomSecondaryActivityName,
	}
}

// IsInvalidInput reports whether err was caused by the submitted entry
// rather than by the service.
func IsInvalidInput(err error) bool {
	var validationErr *form.ValidationError
	return errors.As(err, &validationErr) ||
		errors.Is(err, workouts.ErrUnknownActivity) ||
		errors.Is(err, workouts.ErrUnknownSplit)
}

func (e Entry) fill(f *form.Form) error {
	// start from a blank form so omitted fields are cleared on edit
	f.CopyFrom(workouts.Record{})

	if strings.TrimSpace(e.Activity) != "" {
		activity, err := workouts.ParseActivity(e.Activity)
		if err != nil {
			return err
		}
		if err := f.SelectActivity(activity); err != nil {
			return err
		}
	}
	if strings.TrimSpace(e.ExerciseType) != "" {
		split, err := workouts.ParseSplit(e.ExerciseType)
		if err != nil {
			return fmt.Errorf("exercise type: %w", err)
		}
		if err := f.SelectSplit(split); err != nil {
			return err
		}
	}
	f.SetCustomName(e.CustomActivityName)
	f.SetDuration(strconv.Itoa(e.Duration))

	if strings.TrimSpace(e.SecondaryActivity) == "" {
		return f.SelectSecondaryActivity("")
	}
	secondary, err := workouts.ParseActivity(e.SecondaryActivity)
	if err != nil {
		return fmt.Errorf("secondary activity: %w", err)
	}
	if err := f.SelectSecondaryActivity(secondary); err != nil {
		return err
	}
	if strings.TrimSpace(e.PPLSplit) != "" {
		split, err := workouts.ParseSplit(e.PPLSplit)
		if err != nil {
			return fmt.Errorf("ppl split: %w", err)
		}
		if err := f.SelectSecondarySplit(split); err != nil {
			return err
		}
	}
	f.SetSecondaryCustomName(e.CustomSecondaryActivityName)
	f.SetSecondaryDuration(strconv.Itoa(e.SecondaryDuration))
	return nil
}
