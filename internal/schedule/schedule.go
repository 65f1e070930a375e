// Package schedule maps parsed roadmaps and calendar dates onto a single
// sequence of study days.
//
// Every calendar week maps onto six roadmap entries: Monday to Friday are
// entries 0 to 4 and the whole weekend is entry 5.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gubarz/roadforge/internal/parser"
)

// DateLayout is the layout of start dates in config and front matter
const DateLayout = "2006-01-02"

// EntriesPerWeek is the number of roadmap days in one calendar week
const EntriesPerWeek = 6

// ErrDayOutOfRange is returned when no day has the requested index
var ErrDayOutOfRange = errors.New("day index out of range")

// Slot is a day placed in the flattened roadmap sequence
type Slot struct {
	GlobalDayIndex int
	WeekNumber     int
	WeekTitle      string
	Day            parser.Day
}

// SortedWeeks returns a copy of the weeks ordered by ascending week number,
// keeping document order for equal numbers
func SortedWeeks(r *parser.Roadmap) []parser.Week {
	weeks := make([]parser.Week, len(r.Weeks))
	copy(weeks, r.Weeks)
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].WeekNumber < weeks[j].WeekNumber
	})
	return weeks
}

// Flatten numbers the days of SortedWeeks from zero
func Flatten(r *parser.Roadmap) []Slot {
	slots := make([]Slot, 0, r.DayCount())
	for _, w := range SortedWeeks(r) {
		for _, d := range w.Days {
			slots = append(slots, Slot{
				GlobalDayIndex: len(slots),
				WeekNumber:     w.WeekNumber,
				WeekTitle:      w.Title,
				Day:            d,
			})
		}
	}
	return slots
}

// Lookup returns the slot with the given global day index
func Lookup(slots []Slot, index int) (Slot, error) {
	if index < 0 || index >= len(slots) {
		return Slot{}, fmt.Errorf("%w: %d of %d", ErrDayOutOfRange, index, len(slots))
	}
	return slots[index], nil
}

// DayIndex returns the roadmap day index for current given the start date.
// Times are reduced to calendar dates; dates before start map to 0.
func DayIndex(start, current time.Time) int {
	days := daysBetween(start, current)
	if days < 0 {
		return 0
	}

	week, weekday := days/7, days%7
	if weekday <= 4 {
		return week*EntriesPerWeek + weekday
	}
	return week*EntriesPerWeek + EntriesPerWeek - 1
}

// daysBetween counts calendar days, ignoring clock time and DST shifts
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// DayInfo describes where a global day index falls in a six-entry week
type DayInfo struct {
	GlobalDayIndex int
	WeekNumber     int
	DayInWeek      int
	IsWeekend      bool
}

// Info returns the week and day position of a global day index
func Info(index int) DayInfo {
	if index < 0 {
		index = 0
	}
	day := index%EntriesPerWeek + 1
	return DayInfo{
		GlobalDayIndex: index,
		WeekNumber:     index/EntriesPerWeek + 1,
		DayInWeek:      day,
		IsWeekend:      day == EntriesPerWeek,
	}
}

// ParseStartDate parses a YYYY-MM-DD date in the local time zone
func ParseStartDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q (want %s): %w", s, DateLayout, err)
	}
	return t, nil
}

// FormatDate renders a date like "Monday, January 5, 2026"
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
