package calendar

import (
	"errors"
	"fmt"
	"time"
)

type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
	ViewList  View = "list"
)

const maxWeekNumber = 53

var ErrUnknownView = errors.New("unknown calendar view")

func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewMonth, ViewWeek, ViewList:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
}

// Navigator is the calendar position shared by every view: which layout is
// shown, the date it is centered on and the selected day, if any.
type Navigator struct {
	View     View       `json:"view"`
	Current  time.Time  `json:"current"`
	Selected *time.Time `json:"selected,omitempty"`
}

func NewNavigator(view View, current time.Time) *Navigator {
	return &Navigator{
		View:    view,
		Current: current,
	}
}

// Prev steps back one week in the week view and one month otherwise.
func (n *Navigator) Prev() {
	n.step(-1)
}

func (n *Navigator) Next() {
	n.step(1)
}

// JumpToToday moves every view to the current date and selects it.
func (n *Navigator) JumpToToday(now time.Time) {
	n.Current = now
	n.Select(now)
}

// JumpToWeek moves to the Monday of the given week in the current year.
func (n *Navigator) JumpToWeek(week int) {
	if week < 1 {
		week = 1
	}
	if week > maxWeekNumber {
		week = maxWeekNumber
	}
	n.Current = StartOfWeekNumber(n.Current.Year(), week, n.Current.Location())
}

func (n *Navigator) Select(day time.Time) {
	n.Selected = &day
}

func (n *Navigator) step(dir int) {
	if n.View == ViewWeek {
		n.Current = n.Current.AddDate(0, 0, 7*dir)
		return
	}
	// step from the 1st so Jan 31 + 1 month lands in February
	y, m, _ := n.Current.Date()
	n.Current = time.Date(y, m, 1, 0, 0, 0, 0, n.Current.Location()).AddDate(0, dir, 0)
}
