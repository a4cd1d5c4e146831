package workouts

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var ErrInvalidRecord = errors.New("invalid workout record")

// FieldError describes one failed rule on one record field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidRecord
}

// CheckRules validates the user-editable fields of a record: the activity is
// known, the duration positive, a split is chosen for resistance training and a
// custom name is given for "Other". The same rules apply to the secondary
// activity when one is set. All failures are returned together.
func CheckRules(r Record) error {
	err := checkActivity("activity", r.Activity, r.Duration, r.ExerciseType, r.CustomActivityName)
	if r.HasSecondary() {
		err = multierr.Append(err, checkActivity(
			"secondaryActivity",
			r.SecondaryActivity, r.SecondaryDuration, r.PPLSplit, r.CustomSecondaryActivityName,
		))
	}
	return err
}

// CheckRequired validates what an imported record must carry to be kept at all.
func CheckRequired(r Record) error {
	var err error
	if r.ID == "" {
		err = multierr.Append(err, &FieldError{Field: "id", Reason: "missing"})
	}
	if r.Date.IsZero() {
		err = multierr.Append(err, &FieldError{Field: "date", Reason: "missing"})
	}
	if r.Activity == "" {
		err = multierr.Append(err, &FieldError{Field: "activity", Reason: "missing"})
	} else if !r.Activity.IsValid() {
		err = multierr.Append(err, &FieldError{Field: "activity", Reason: fmt.Sprintf("unknown activity %q", r.Activity)})
	}
	if r.Duration < 1 {
		err = multierr.Append(err, &FieldError{Field: "duration", Reason: "must be a positive number of minutes"})
	}
	return err
}

// Sanitize drops optional fields that contradict their activity: a split on a
// non-resistance activity, a custom name on a non-"Other" activity, and the
// secondary details when the secondary activity is missing or unknown.
func Sanitize(r Record) Record {
	if r.Activity != ActivityResistance || !r.ExerciseType.IsValid() {
		r.ExerciseType = ""
	}
	if r.Activity != ActivityOther {
		r.CustomActivityName = ""
	}

	if !r.SecondaryActivity.IsValid() {
		r.SecondaryActivity = ""
		r.SecondaryDuration = 0
		r.PPLSplit = ""
		r.CustomSecondaryActivityName = ""
		return r
	}
	if r.SecondaryDuration < 0 {
		r.SecondaryDuration = 0
	}
	if r.SecondaryActivity != ActivityResistance || !r.PPLSplit.IsValid() {
		r.PPLSplit = ""
	}
	if r.SecondaryActivity != ActivityOther {
		r.CustomSecondaryActivityName = ""
	}
	return r
}

func checkActivity(field string, a Activity, duration int, split Split, custom string) error {
	var err error
	switch {
	case a == "":
		return &FieldError{Field: field, Reason: "activity not selected"}
	case !a.IsValid():
		return &FieldError{Field: field, Reason: fmt.Sprintf("unknown activity %q", a)}
	}

	durationField := "duration"
	splitField := "exerciseType"
	customField := "customActivityName"
	if field == "secondaryActivity" {
		durationField = "secondaryDuration"
		splitField = "pplSplit"
		customField = "customSecondaryActivityName"
	}

	if duration < 1 {
		err = multierr.Append(err, &FieldError{Field: durationField, Reason: "must be a positive number of minutes"})
	}
	if a == ActivityResistance && !split.IsValid() {
		err = multierr.Append(err, &FieldError{Field: splitField, Reason: "push/pull/legs split required for resistance training"})
	}
	if a != ActivityResistance && split != "" {
		err = multierr.Append(err, &FieldError{Field: splitField, Reason: "split only applies to resistance training"})
	}
	if a == ActivityOther && custom == "" {
		err = multierr.Append(err, &FieldError{Field: customField, Reason: "custom activity name required"})
	}
	if a != ActivityOther && custom != "" {
		err = multierr.Append(err, &FieldError{Field: customField, Reason: "custom name only applies to \"Other\""})
	}
	return err
}
