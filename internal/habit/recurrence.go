// Package habit holds the core habit logic: recurrence projection,
// progress tracking, and the service that coordinates them against the
// persistence layer.
package habit

import (
	"strconv"
	"time"

	"habitchain/internal/model"
)

// Filter selects which projected habits a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// DayBounds returns the inclusive local calendar-day bounds of d:
// 00:00:00.000 through 23:59:59.999.
func DayBounds(d time.Time) (start, end time.Time) {
	year, month, day := d.Date()
	start = time.Date(year, month, day, 0, 0, 0, 0, d.Location())
	end = time.Date(year, month, day, 23, 59, 59, 999_000_000, d.Location())
	return start, end
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AppliesOn reports whether h is tracked on date d.
//
// Daily habits always apply. Weekly habits apply on the weekdays named in
// their tracking days; monthly habits on the listed days of the month.
// An unrecognized frequency never applies.
func AppliesOn(h model.Habit, d time.Time) bool {
	switch h.Frequency {
	case model.FrequencyDaily:
		return true
	case model.FrequencyWeekly:
		return containsDay(h.TrackingDays, model.WeekdayShort[d.Weekday()])
	case model.FrequencyMonthly:
		return containsDay(h.TrackingDays, strconv.Itoa(d.Day()))
	default:
		return false
	}
}

// ProjectForDate returns h's effective completion state for the viewed
// date. When date is today the live progress fields are used unmodified;
// otherwise completion is derived from the day's completion records and
// effective progress is reported as the full goal or zero. The projection
// is read-only and never written back.
func ProjectForDate(h model.Habit, date, today time.Time, completions []model.Completion) model.Habit {
	if SameDay(date, today) {
		return h
	}

	completed := false
	for _, c := range completions {
		if c.HabitID == h.ID && SameDay(c.CompletedAt, date) {
			completed = true
			break
		}
	}

	h.Completed = completed
	if completed {
		h.Progress = h.Goal
	} else {
		h.Progress = 0
	}
	return h
}

// ApplyFilter narrows habits to the user-selected view filter.
// An unknown filter behaves like FilterAll.
func ApplyFilter(habits []model.Habit, f Filter) []model.Habit {
	if f != FilterActive && f != FilterCompleted {
		return habits
	}

	wantCompleted := f == FilterCompleted
	filtered := make([]model.Habit, 0, len(habits))
	for _, h := range habits {
		if h.Completed == wantCompleted {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
