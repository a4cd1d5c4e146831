package workouts

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownActivity = errors.New("unknown activity")

// Activity is the closed set of workout kinds.
type Activity string

const (
	ActivityBJJ        Activity = "Brazilian Jiu-Jitsu"
	ActivityCycling    Activity = "Cycling"
	ActivityHiking     Activity = "Hiking"
	ActivityKickboxing Activity = "Kickboxing"
	ActivityOther      Activity = "Other"
	ActivityResistance Activity = "Resistance"
	ActivityRunning    Activity = "Running"
	ActivitySwimming   Activity = "Swimming"
)

// DefaultColor is used for custom ("Other") activity names and anything not in the catalog.
const DefaultColor = "#6b7280"

// ActivityInfo is the display metadata every view uses for an activity.
type ActivityInfo struct {
	Activity Activity `json:"activity"`
	Label    string   `json:"label"`
	Short    string   `json:"short"`
	Color    string   `json:"color"`
}

// catalog is the one canonical activity table, ordered as shown in pickers.
var catalog = []ActivityInfo{
	{Activity: ActivityBJJ, Label: "Brazilian Jiu-Jitsu", Short: "BJJ", Color: "#8b5cf6"},
	{Activity: ActivityCycling, Label: "Cycling", Short: "Cycling", Color: "#06b6d4"},
	{Activity: ActivityHiking, Label: "Hiking", Short: "Hiking", Color: "#84cc16"},
	{Activity: ActivityKickboxing, Label: "Kickboxing", Short: "Kickboxing", Color: "#ef4444"},
	{Activity: ActivityOther, Label: "Other", Short: "Other", Color: DefaultColor},
	{Activity: ActivityResistance, Label: "Resistance", Short: "Resistance", Color: "#f97316"},
	{Activity: ActivityRunning, Label: "Running", Short: "Running", Color: "#22c55e"},
	{Activity: ActivitySwimming, Label: "Swimming", Short: "Swimming", Color: "#3b82f6"},
}

// legacy names written by older app revisions
var activityAliases = map[string]Activity{
	"bjj": ActivityBJJ,
}

// Activities returns the catalog in display order.
func Activities() []ActivityInfo {
	out := make([]ActivityInfo, len(catalog))
	copy(out, catalog)
	return out
}

func (a Activity) String() string {
	return string(a)
}

func (a Activity) IsValid() bool {
	_, ok := a.Info()
	return ok
}

func (a Activity) Info() (ActivityInfo, bool) {
	for _, info := range catalog {
		if info.Activity == a {
			return info, true
		}
	}
	return ActivityInfo{}, false
}

func (a Activity) Color() string {
	if info, ok := a.Info(); ok {
		return info.Color
	}
	return DefaultColor
}

// ColorFor resolves a display name (enum name or custom label) to its chart color.
func ColorFor(displayName string) string {
	return Activity(displayName).Color()
}

// ParseActivity accepts enum names case-insensitively plus legacy aliases.
func ParseActivity(s string) (Activity, error) {
	trimmed := strings.TrimSpace(s)
	for _, info := range catalog {
		if strings.EqualFold(string(info.Activity), trimmed) {
			return info.Activity, nil
		}
	}
	if a, ok := activityAliases[strings.ToLower(trimmed)]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownActivity, s)
}

// Split is the push/pull/legs subtype of resistance training.
type Split string

const (
	SplitPush Split = "Push"
	SplitPull Split = "Pull"
	SplitLegs Split = "Legs"
)

var ErrUnknownSplit = errors.New("unknown ppl split")

func (s Split) IsValid() bool {
	switch s {
	case SplitPush, SplitPull, SplitLegs:
		return true
	default:
		return false
	}
}

func ParseSplit(s string) (Split, error) {
	trimmed := strings.TrimSpace(s)
	for _, split := range []Split{SplitPush, SplitPull, SplitLegs} {
		if strings.EqualFold(string(split), trimmed) {
			return split, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSplit, s)
}
