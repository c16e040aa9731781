// Package stats derives read-only rollups from habits and completion
// records. Nothing here mutates stored state.
package stats

import (
	"context"
	"time"

	"habitchain/internal/habit"
	"habitchain/internal/model"
	"habitchain/internal/store"
)

// DayCount is one day's completion total in the weekly series.
type DayCount struct {
	Day       string
	Completed int
}

// TodaySnapshot is the same-day rollup shown on the stats view.
type TodaySnapshot struct {
	Started   int
	Completed int
	NotDone   int
}

// weekdayOrder is the Monday-first presentation order of the weekly series.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Aggregator computes completion statistics.
type Aggregator struct {
	store store.Store

	// now is replaceable in tests.
	now func() time.Time
}

// NewAggregator creates a stats aggregator over the given store.
func NewAggregator(st store.Store) *Aggregator {
	return &Aggregator{store: st, now: time.Now}
}

// Weekly returns the completion counts of the trailing seven calendar
// days (including today), bucketed by weekday and presented Monday-first.
// The series always has exactly seven entries; days without completions
// count zero.
func (a *Aggregator) Weekly(ctx context.Context) ([]DayCount, error) {
	now := a.now()
	windowStart, _ := habit.DayBounds(now.AddDate(0, 0, -6))
	_, windowEnd := habit.DayBounds(now)

	completions, err := a.store.CompletionsInRange(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	counts := make(map[time.Weekday]int, 7)
	for _, c := range completions {
		counts[c.CompletedAt.Weekday()]++
	}

	series := make([]DayCount, 0, 7)
	for _, wd := range weekdayOrder {
		series = append(series, DayCount{
			Day:       model.WeekdayShort[wd],
			Completed: counts[wd],
		})
	}
	return series, nil
}

// Today returns the started/completed/not-done totals for the current day.
func (a *Aggregator) Today(ctx context.Context) (TodaySnapshot, error) {
	started, err := a.store.HabitCount(ctx)
	if err != nil {
		return TodaySnapshot{}, err
	}

	dayStart, dayEnd := habit.DayBounds(a.now())
	completed, err := a.store.CompletionCountInRange(ctx, dayStart, dayEnd)
	if err != nil {
		return TodaySnapshot{}, err
	}

	return TodaySnapshot{
		Started:   started,
		Completed: completed,
		NotDone:   started - completed,
	}, nil
}
