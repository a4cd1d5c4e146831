package workouts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/activeweek/internal/workouts"
)

func TestActivities(t *testing.T) {
	activities := workouts.Activities()
	require.Len(t, activities, 8)
	for _, info := range activities {
		assert.True(t, info.Activity.IsValid())
		assert.NotEmpty(t, info.Color)
	}
}

func TestParseActivity(t *testing.T) {
	a, err := workouts.ParseActivity("running")
	require.NoError(t, err)
	assert.Equal(t, workouts.ActivityRunning, a)

	a, err = workouts.ParseActivity(" BJJ ")
	require.NoError(t, err)
	assert.Equal(t, workouts.ActivityBJJ, a)

	_, err = workouts.ParseActivity("Curling")
	assert.ErrorIs(t, err, workouts.ErrUnknownActivity)
}

func TestParseSplit(t *testing.T) {
	s, err := workouts.ParseSplit("legs")
	require.NoError(t, err)
	assert.Equal(t, workouts.SplitLegs, s)

	_, err = workouts.ParseSplit("Core")
	assert.ErrorIs(t, err, workouts.ErrUnknownSplit)
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#22c55e", workouts.ColorFor("Running"))
	assert.Equal(t, workouts.DefaultColor, workouts.ColorFor("Climbing"))
}
