package habit

import (
	"context"
	"testing"
	"time"

	"habitchain/internal/model"
	"habitchain/tests/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(testutil.NewTestStore(t), nil, nil)
}

func TestSetProgressClamping(t *testing.T) {
	tests := []struct {
		name          string
		set           int
		wantProgress  int
		wantCompleted bool
	}{
		{"negative clamps to zero", -5, 0, false},
		{"zero", 0, 0, false},
		{"partial", 4, 4, false},
		{"exact goal", 10, 10, true},
		{"above goal clamps", 15, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			seeded := testutil.SeedHabit(t, svc.store, testutil.Habit(func(h *model.Habit) {
				h.Goal = 10
			}))

			got, err := svc.SetProgress(context.Background(), seeded.ID, tt.set)
			if err != nil {
				t.Fatalf("SetProgress: %v", err)
			}
			if got.Progress != tt.wantProgress {
				t.Errorf("progress = %d, want %d", got.Progress, tt.wantProgress)
			}
			if got.Completed != tt.wantCompleted {
				t.Errorf("completed = %v, want %v", got.Completed, tt.wantCompleted)
			}
		})
	}
}

func TestIncrementToCompletion(t *testing.T) {
	svc := newTestService(t)
	seeded := testutil.SeedHabit(t, svc.store, testutil.Habit(func(h *model.Habit) {
		h.Goal = 8
	}))
	ctx := context.Background()

	for i := 1; i <= 8; i++ {
		h, err := svc.IncrementProgress(ctx, seeded.ID)
		if err != nil {
			t.Fatalf("increment %d: %v", i, err)
		}
		if h.Progress != i {
			t.Errorf("after increment %d progress = %d", i, h.Progress)
		}
	}

	h, err := svc.Get(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !h.Completed {
		t.Error("habit should be completed after reaching the goal")
	}

	// Reaching the goal records today's completion.
	start, end := DayBounds(time.Now())
	count, err := svc.store.CompletionCountInRange(ctx, start, end)
	if err != nil {
		t.Fatalf("CompletionCountInRange: %v", err)
	}
	if count != 1 {
		t.Errorf("completion count = %d, want 1", count)
	}
}

func TestDecrementBelowGoalRemovesCompletion(t *testing.T) {
	svc := newTestService(t)
	seeded := testutil.SeedHabit(t, svc.store, testutil.Habit(func(h *model.Habit) {
		h.Goal = 2
	}))
	ctx := context.Background()

	if _, err := svc.SetProgress(ctx, seeded.ID, 2); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}

	h, err := svc.DecrementProgress(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("DecrementProgress: %v", err)
	}
	if h.Completed {
		t.Error("habit should no longer be completed")
	}

	start, end := DayBounds(time.Now())
	count, err := svc.store.CompletionCountInRange(ctx, start, end)
	if err != nil {
		t.Fatalf("CompletionCountInRange: %v", err)
	}
	if count != 0 {
		t.Errorf("completion count = %d, want 0", count)
	}
}

func TestDecrementAtZeroStaysZero(t *testing.T) {
	svc := newTestService(t)
	seeded := testutil.SeedHabit(t, svc.store, testutil.Habit(nil))

	h, err := svc.DecrementProgress(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("DecrementProgress: %v", err)
	}
	if h.Progress != 0 {
		t.Errorf("progress = %d, want 0", h.Progress)
	}
}

func TestResetProgress(t *testing.T) {
	svc := newTestService(t)
	seeded := testutil.SeedHabit(t, svc.store, testutil.Habit(func(h *model.Habit) {
		h.Goal = 4
	}))
	ctx := context.Background()

	if _, err := svc.SetProgress(ctx, seeded.ID, 4); err != nil {
		t.Fatalf("SetProgress: %v", err)
	}

	h, err := svc.ResetProgress(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("ResetProgress: %v", err)
	}
	if h.Progress != 0 || h.Completed {
		t.Errorf("after reset progress=%d completed=%v", h.Progress, h.Completed)
	}
}

func TestProgressOnMissingHabit(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.IncrementProgress(context.Background(), 9999)
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
