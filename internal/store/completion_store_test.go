package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitchain/internal/model"
	"habitchain/tests/testutil"
)

func TestCompletionsInRange(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	seeded := testutil.SeedHabit(t, s, testutil.Habit(nil))

	base := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.Local)
	for _, offset := range []int{-2, -1, 0, 1, 2} {
		_, err := s.InsertCompletion(ctx, model.Completion{
			HabitID:     seeded.ID,
			CompletedAt: base.AddDate(0, 0, offset),
		})
		require.NoError(t, err)
	}

	from := base.AddDate(0, 0, -1).Add(-time.Hour)
	to := base.AddDate(0, 0, 1).Add(time.Hour)

	got, err := s.CompletionsInRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Ordered by timestamp, millisecond precision preserved.
	assert.True(t, got[0].CompletedAt.Before(got[1].CompletedAt))
	assert.True(t, got[1].CompletedAt.Equal(base))
	assert.Equal(t, seeded.ID, got[0].HabitID)
}

func TestCompletionTimestampRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	seeded := testutil.SeedHabit(t, s, testutil.Habit(nil))

	at := time.Date(2026, time.August, 24, 23, 59, 59, 999_000_000, time.Local)
	_, err := s.InsertCompletion(ctx, model.Completion{HabitID: seeded.ID, CompletedAt: at})
	require.NoError(t, err)

	got, err := s.CompletionsInRange(ctx, at.Add(-time.Minute), at.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].CompletedAt.Equal(at), "got %v, want %v", got[0].CompletedAt, at)
}

func TestDeleteCompletionsIsScoped(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a := testutil.SeedHabit(t, s, testutil.Habit(func(h *model.Habit) { h.Name = "A" }))
	b := testutil.SeedHabit(t, s, testutil.Habit(func(h *model.Habit) { h.Name = "B" }))

	at := time.Date(2026, time.August, 24, 9, 0, 0, 0, time.Local)
	for _, id := range []int64{a.ID, b.ID} {
		_, err := s.InsertCompletion(ctx, model.Completion{HabitID: id, CompletedAt: at})
		require.NoError(t, err)
	}

	from := at.Add(-time.Hour)
	to := at.Add(time.Hour)
	require.NoError(t, s.DeleteCompletions(ctx, a.ID, from, to))

	got, err := s.CompletionsInRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].HabitID)
}

func TestCompletionCountInRange(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	seeded := testutil.SeedHabit(t, s, testutil.Habit(nil))

	at := time.Date(2026, time.August, 24, 9, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		_, err := s.InsertCompletion(ctx, model.Completion{
			HabitID:     seeded.ID,
			CompletedAt: at.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	count, err := s.CompletionCountInRange(ctx, at, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, count, "range bounds are inclusive")
}
