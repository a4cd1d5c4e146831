package workouts

import (
	"fmt"
	"time"
)

// Record is one logged workout session. A record may carry a secondary
// activity done in the same session (e.g. stretching after a run).
type Record struct {
	ID                 string    `json:"id"`
	Date               time.Time `json:"date"`
	Activity           Activity  `json:"activity"`
	Duration           int       `json:"duration"`
	ExerciseType       Split     `json:"exerciseType,omitempty"`
	CustomActivityName string    `json:"customActivityName,omitempty"`

	SecondaryActivity           Activity `json:"secondaryActivity,omitempty"`
	SecondaryDuration           int      `json:"secondaryDuration,omitempty"`
	PPLSplit                    Split    `json:"pplSplit,omitempty"`
	CustomSecondaryActivityName string   `json:"customSecondaryActivityName,omitempty"`
}

func (r Record) HasSecondary() bool {
	return r.SecondaryActivity != ""
}

// DisplayName is the name used for grouping and charts: the custom label
// for "Other" when one is set, the activity name otherwise.
func (r Record) DisplayName() string {
	return displayName(r.Activity, r.CustomActivityName)
}

func (r Record) SecondaryDisplayName() string {
	if !r.HasSecondary() {
		return ""
	}
	return displayName(r.SecondaryActivity, r.CustomSecondaryActivityName)
}

// Title renders e.g. "Resistance - Push".
func (r Record) Title() string {
	return title(r.DisplayName(), r.ExerciseType)
}

func (r Record) SecondaryTitle() string {
	if !r.HasSecondary() {
		return ""
	}
	return title(r.SecondaryDisplayName(), r.PPLSplit)
}

// DurationText renders "30min", or "30+15min" with a secondary duration.
func (r Record) DurationText() string {
	if r.SecondaryDuration > 0 {
		return fmt.Sprintf("%d+%dmin", r.Duration, r.SecondaryDuration)
	}
	return fmt.Sprintf("%dmin", r.Duration)
}

func displayName(a Activity, custom string) string {
	if a == ActivityOther && custom != "" {
		return custom
	}
	return string(a)
}

func title(name string, split Split) string {
	if split == "" {
		return name
	}
	return name + " - " + string(split)
}

// Patch holds the fields to change on an existing record; nil fields are left untouched.
// A pointer to a zero value clears an optional field.
type Patch struct {
	Date               *time.Time `json:"date,omitempty"`
	Activity           *Activity  `json:"activity,omitempty"`
	Duration           *int       `json:"duration,omitempty"`
	ExerciseType       *Split     `json:"exerciseType,omitempty"`
	CustomActivityName *string    `json:"customActivityName,omitempty"`

	SecondaryActivity           *Activity `json:"secondaryActivity,omitempty"`
	SecondaryDuration           *int      `json:"secondaryDuration,omitempty"`
	PPLSplit                    *Split    `json:"pplSplit,omitempty"`
	CustomSecondaryActivityName *string   `json:"customSecondaryActivityName,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply returns a copy of r with the patch merged in. The id never changes.
func (p Patch) Apply(r Record) Record {
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Activity != nil {
		r.Activity = *p.Activity
	}
	if p.Duration != nil {
		r.Duration = *p.Duration
	}
	if p.ExerciseType != nil {
		r.ExerciseType = *p.ExerciseType
	}
	if p.CustomActivityName != nil {
		r.CustomActivityName = *p.CustomActivityName
	}
	if p.SecondaryActivity != nil {
		r.SecondaryActivity = *p.SecondaryActivity
	}
	if p.SecondaryDuration != nil {
		r.SecondaryDuration = *p.SecondaryDuration
	}
	if p.PPLSplit != nil {
		r.PPLSplit = *p.PPLSplit
	}
	if p.CustomSecondaryActivityName != nil {
		r.CustomSecondaryActivityName = *p.CustomSecondaryActivityName
	}
	return r
}

// PatchFrom builds a patch that replaces every field but id with the values of r.
func PatchFrom(r Record, includeDate bool) Patch {
	p := Patch{
		Activity:                    ptr(r.Activity),
		Duration:                    ptr(r.Duration),
		ExerciseType:                ptr(r.ExerciseType),
		CustomActivityName:          ptr(r.CustomActivityName),
		SecondaryActivity:           ptr(r.SecondaryActivity),
		SecondaryDuration:           ptr(r.SecondaryDuration),
		PPLSplit:                    ptr(r.PPLSplit),
		CustomSecondaryActivityName: ptr(r.CustomSecondaryActivityName),
	}
	if includeDate {
		p.Date = ptr(r.Date)
	}
	return p
}

func ptr[T any](v T) *T {
	return &v
}
