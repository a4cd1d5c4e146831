package form_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/activeweek/internal/workouts"
	"github.com/2beens/activeweek/internal/workouts/form"
)

func TestForm_StateTransitions(t *testing.T) {
	f := form.New()
	assert.Equal(t, form.StateEmpty, f.State())
	assert.False(t, f.CanSubmit())

	require.NoError(t, f.SelectActivity(workouts.ActivityResistance))
	assert.Equal(t, form.StateActivitySelected, f.State())

	require.NoError(t, f.SelectSplit(workouts.SplitPush))
	assert.Equal(t, form.StateSubtypeSelected, f.State())

	f.SetDuration("abc")
	assert.Equal(t, form.StateSubtypeSelected, f.State())

	f.SetDuration(" 45 ")
	assert.Equal(t, form.StateSubmittable, f.State())
	assert.True(t, f.CanSubmit())

	require.NoError(t, f.SelectSecondaryActivity(workouts.ActivityOther))
	assert.Equal(t, form.StateDurationEntered, f.State())

	f.SetSecondaryDuration("10")
	f.SetSecondaryCustomName("  Mobility ")
	assert.Equal(t, form.StateSubmittable, f.State())
}

func TestForm_NonResistanceSkipsSubtype(t *testing.T) {
	f := form.New()
	require.NoError(t, f.SelectActivity(workouts.ActivityRunning))
	assert.Equal(t, form.StateActivitySelected, f.State())
	f.SetDuration("30")
	assert.Equal(t, form.StateSubmittable, f.State())

	require.NoError(t, f.SelectActivity(workouts.ActivityOther))
	assert.Equal(t, form.StateDurationEntered, f.State())
	f.SetCustomName("Climbing")
	assert.True(t, f.CanSubmit())
}

func TestForm_ChangingActivityClearsDependents(t *testing.T) {
	f := form.New()
	require.NoError(t, f.SelectActivity(workouts.ActivityResistance))
	require.NoError(t, f.SelectSplit(workouts.SplitLegs))
	f.SetDuration("50")

	require.NoError(t, f.SelectActivity(workouts.ActivitySwimming))
	rec, err := f.Submit(time.Now())
	require.NoError(t, err)
	assert.Empty(t, rec.ExerciseType)

	require.NoError(t, f.SelectActivity(workouts.ActivityOther))
	f.SetCustomName("Yoga")
	require.NoError(t, f.SelectActivity(workouts.ActivityCycling))
	rec, err = f.Submit(time.Now())
	require.NoError(t, err)
	assert.Empty(t, rec.CustomActivityName)
}

func TestForm_ClearingSecondary(t *testing.T) {
	f := form.New()
	require.NoError(t, f.SelectActivity(workouts.ActivityRunning))
	f.SetDuration("30")
	require.NoError(t, f.SelectSecondaryActivity(workouts.ActivityResistance))
	require.NoError(t, f.SelectSecondarySplit(workouts.SplitPull))
	f.SetSecondaryDuration("15")

	require.NoError(t, f.SelectSecondaryActivity(""))
	rec, err := f.Submit(time.Now())
	require.NoError(t, err)
	assert.False(t, rec.HasSecondary())
	assert.Equal(t, 0, rec.SecondaryDuration)
	assert.Empty(t, rec.PPLSplit)

	// re-selecting starts from a clean secondary
	require.NoError(t, f.SelectSecondaryActivity(workouts.ActivityResistance))
	assert.False(t, f.CanSubmit())
}

func TestForm_Validate(t *testing.T) {
	f := form.New()
	require.NoError(t, f.SelectActivity(workouts.ActivityResistance))
	require.NoError(t, f.SelectSecondaryActivity(workouts.ActivityOther))

	err := f.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, workouts.ErrInvalidRecord)

	var verr *form.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"duration", "exerciseType", "secondaryDuration", "customSecondaryActivityName"}, verr.Fields())

	_, err = f.Submit(time.Now())
	assert.ErrorAs(t, err, &verr)
}

func TestForm_RejectsUnknownValues(t *testing.T) {
	f := form.New()
	assert.ErrorIs(t, f.SelectActivity("Curling"), workouts.ErrUnknownActivity)
	assert.ErrorIs(t, f.SelectSplit("Core"), workouts.ErrUnknownSplit)
	assert.ErrorIs(t, f.SelectSecondaryActivity("Curling"), workouts.ErrUnknownActivity)
	assert.Equal(t, form.StateEmpty, f.State())
}

func TestForm_Submit(t *testing.T) {
	f := form.New()
	require.NoError(t, f.SelectActivity(workouts.ActivityKickboxing))
	f.SetDuration("60")
	require.NoError(t, f.SelectSecondaryActivity(workouts.ActivityResistance))
	require.NoError(t, f.SelectSecondarySplit(workouts.SplitPush))
	f.SetSecondaryDuration("20")

	date := time.Date(2024, 4, 2, 18, 0, 0, 0, time.UTC)
	rec, err := f.Submit(date)
	require.NoError(t, err)
	assert.Equal(t, workouts.Record{
		Date:              date,
		Activity:          workouts.ActivityKickboxing,
		Duration:          60,
		SecondaryActivity: workouts.ActivityResistance,
		SecondaryDuration: 20,
		PPLSplit:          workouts.SplitPush,
	}, rec)
}

func TestEditForm_Patch(t *testing.T) {
	original := workouts.Record{
		ID:           "w1",
		Date:         time.Date(2024, 4, 2, 18, 0, 0, 0, time.UTC),
		Activity:     workouts.ActivityResistance,
		Duration:     40,
		ExerciseType: workouts.SplitLegs,
	}

	f := form.NewEditForm(original)
	assert.Equal(t, form.StateSubmittable, f.State())
	f.SetDuration("55")

	patch, err := f.Patch()
	require.NoError(t, err)
	assert.Nil(t, patch.Date)
	updated := patch.Apply(original)
	assert.Equal(t, "w1", updated.ID)
	assert.Equal(t, 55, updated.Duration)
	assert.Equal(t, original.Date, updated.Date)

	moved := time.Date(2024, 4, 5, 18, 0, 0, 0, time.UTC)
	f.Retarget(moved)
	patch, err = f.Patch()
	require.NoError(t, err)
	require.NotNil(t, patch.Date)
	assert.Equal(t, moved, patch.Apply(original).Date)

	_, err = form.New().Patch()
	assert.ErrorIs(t, err, form.ErrNotEditing)
}

func TestRecentRecords_AndCopyFrom(t *testing.T) {
	base := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	records := []workouts.Record{
		{ID: "a", Date: base, Activity: workouts.ActivityRunning, Duration: 20},
		{ID: "c", Date: base.AddDate(0, 0, 2), Activity: workouts.ActivityOther, Duration: 30, CustomActivityName: "Climbing",
			SecondaryActivity: workouts.ActivityResistance, SecondaryDuration: 15, PPLSplit: workouts.SplitPull},
		{ID: "b", Date: base.AddDate(0, 0, 1), Activity: workouts.ActivitySwimming, Duration: 25},
	}

	recent := form.RecentRecords(records, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.Len(t, form.RecentRecords(records, 10), 3)
	assert.Equal(t, "a", records[0].ID)

	f := form.New()
	f.CopyFrom(recent[0])
	f.SetDuration("35")
	target := base.AddDate(0, 0, 5)
	rec, err := f.Submit(target)
	require.NoError(t, err)
	assert.Empty(t, rec.ID)
	assert.Equal(t, target, rec.Date)
	assert.Equal(t, "Climbing", rec.CustomActivityName)
	assert.Equal(t, 35, rec.Duration)
	assert.Equal(t, workouts.SplitPull, rec.PPLSplit)
	assert.Equal(t, 15, rec.SecondaryDuration)
}
