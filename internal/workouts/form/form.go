package form

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/2beens/activeweek/internal/workouts"
)

type State string

const (
	StateEmpty            State = "empty"
	StateActivitySelected State = "activity_selected"
	StateSubtypeSelected  State = "subtype_selected"
	StateDurationEntered  State = "duration_entered"
	StateSubmittable      State = "submittable"
)

var ErrNotEditing = errors.New("form is not editing an existing workout")

// ValidationError carries every failing rule of a form.
type ValidationError struct {
	err error
}

func (e *ValidationError) Error() string {
	return "invalid workout: " + e.err.Error()
}

func (e *ValidationError) Unwrap() []error {
	return multierr.Errors(e.err)
}

// Fields lists the names of the invalid fields, in rule order.
func (e *ValidationError) Fields() []string {
	var fields []string
	for _, err := range multierr.Errors(e.err) {
		var fe *workouts.FieldError
		if errors.As(err, &fe) {
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

type entry struct {
	activity     workouts.Activity
	split        workouts.Split
	customName   string
	durationText string
}

func (e entry) duration() int {
	d, err := strconv.Atoi(strings.TrimSpace(e.durationText))
	if err != nil || d < 1 {
		return 0
	}
	return d
}

// Form captures one workout being created or edited.
type Form struct {
	primary   entry
	secondary entry

	editing *workouts.Record
	date    time.Time
}

func New() *Form {
	return &Form{}
}

// NewEditForm pre-fills the form from an existing record. The date only
// changes through Retarget.
func NewEditForm(rec workouts.Record) *Form {
	f := &Form{
		editing: &rec,
		date:    rec.Date,
	}
	f.CopyFrom(rec)
	return f
}

// SelectActivity sets the primary activity, clearing a split or custom name
// that no longer applies.
func (f *Form) SelectActivity(a workouts.Activity) error {
	if !a.IsValid() {
		return workouts.ErrUnknownActivity
	}
	selectActivity(&f.primary, a)
	return nil
}

func (f *Form) SelectSplit(s workouts.Split) error {
	if !s.IsValid() {
		return workouts.ErrUnknownSplit
	}
	f.primary.split = s
	return nil
}

func (f *Form) SetDuration(text string) {
	f.primary.durationText = text
}

func (f *Form) SetCustomName(name string) {
	f.primary.customName = strings.TrimSpace(name)
}

// SelectSecondaryActivity sets the secondary activity; the empty activity
// removes it together with its duration, split and custom name.
func (f *Form) SelectSecondaryActivity(a workouts.Activity) error {
	if a == "" {
		f.secondary = entry{}
		return nil
	}
	if !a.IsValid() {
		return workouts.ErrUnknownActivity
	}
	selectActivity(&f.secondary, a)
	return nil
}

func (f *Form) SelectSecondarySplit(s workouts.Split) error {
	if !s.IsValid() {
		return workouts.ErrUnknownSplit
	}
	f.secondary.split = s
	return nil
}

func (f *Form) SetSecondaryDuration(text string) {
	f.secondary.durationText = text
}

func (f *Form) SetSecondaryCustomName(name string) {
	f.secondary.customName = strings.TrimSpace(name)
}

// Retarget moves an edited workout to another day.
func (f *Form) Retarget(date time.Time) {
	f.date = date
}

// CopyFrom fills every field but id and date from rec.
func (f *Form) CopyFrom(rec workouts.Record) {
	f.primary = entry{
		activity:     rec.Activity,
		split:        rec.ExerciseType,
		customName:   rec.CustomActivityName,
		durationText: durationText(rec.Duration),
	}
	f.secondary = entry{}
	if rec.HasSecondary() {
		f.secondary = entry{
			activity:     rec.SecondaryActivity,
			split:        rec.PPLSplit,
			customName:   rec.CustomSecondaryActivityName,
			durationText: durationText(rec.SecondaryDuration),
		}
	}
}

func (f *Form) State() State {
	p := f.primary
	switch {
	case p.activity == "":
		return StateEmpty
	case p.activity == workouts.ActivityResistance && p.split == "":
		return StateActivitySelected
	case p.duration() == 0 && p.activity == workouts.ActivityResistance:
		return StateSubtypeSelected
	case p.duration() == 0:
		return StateActivitySelected
	case f.Validate() != nil:
		return StateDurationEntered
	default:
		return StateSubmittable
	}
}

// Validate checks the same rules for the primary and, when chosen, the
// secondary activity and returns all failures in one *ValidationError.
func (f *Form) Validate() error {
	if err := workouts.CheckRules(f.record()); err != nil {
		return &ValidationError{err: err}
	}
	return nil
}

func (f *Form) CanSubmit() bool {
	return f.Validate() == nil
}

// Submit builds a new record for date. The id is left for the store to assign.
func (f *Form) Submit(date time.Time) (workouts.Record, error) {
	if err := f.Validate(); err != nil {
		return workouts.Record{}, err
	}
	rec := f.record()
	rec.Date = date
	return rec, nil
}

// Patch builds the update for the record the form was opened with.
func (f *Form) Patch() (workouts.Patch, error) {
	if f.editing == nil {
		return workouts.Patch{}, ErrNotEditing
	}
	if err := f.Validate(); err != nil {
		return workouts.Patch{}, err
	}
	rec := f.record()
	rec.Date = f.date
	return workouts.PatchFrom(rec, !f.date.Equal(f.editing.Date)), nil
}

func (f *Form) record() workouts.Record {
	rec := workouts.Record{
		Activity:           f.primary.activity,
		Duration:           f.primary.duration(),
		ExerciseType:       f.primary.split,
		CustomActivityName: f.primary.customName,
	}
	if f.secondary.activity != "" {
		rec.SecondaryActivity = f.secondary.activity
		rec.SecondaryDuration = f.secondary.duration()
		rec.PPLSplit = f.secondary.split
		rec.CustomSecondaryActivityName = f.secondary.customName
	}
	return rec
}

// RecentRecords returns the n most recent records, newest first.
func RecentRecords(records []workouts.Record, n int) []workouts.Record {
	sorted := make([]workouts.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func selectActivity(e *entry, a workouts.Activity) {
	e.activity = a
	if a != workouts.ActivityResistance {
		e.split = ""
	}
	if a != workouts.ActivityOther {
		e.customName = ""
	}
}

func durationText(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return strconv.Itoa(minutes)
}
