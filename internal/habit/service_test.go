package habit

import (
	"context"
	"sync"
	"testing"
	"time"

	"habitchain/internal/model"
	"habitchain/internal/validation"
	"habitchain/tests/testutil"
)

// recordingScheduler captures Schedule and Cancel calls.
type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []int64
	cancelled []int64
}

func (r *recordingScheduler) Schedule(h model.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, h.ID)
	return nil
}

func (r *recordingScheduler) Cancel(habitID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled = append(r.cancelled, habitID)
}

func TestCreateValidatesAndSchedules(t *testing.T) {
	sched := &recordingScheduler{}
	svc := NewService(testutil.NewTestStore(t), sched, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, testutil.Habit(func(h *model.Habit) {
		h.Reminders = []string{"07:30"}
		h.Progress = 99 // must be ignored
		h.Completed = true
	}))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("created habit should carry the assigned id")
	}
	if created.Progress != 0 || created.Completed {
		t.Errorf("new habit should start at zero, got progress=%d completed=%v", created.Progress, created.Completed)
	}
	if len(sched.scheduled) != 1 || sched.scheduled[0] != created.ID {
		t.Errorf("scheduled = %v, want [%d]", sched.scheduled, created.ID)
	}
}

func TestCreateRejectsInvalidHabit(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*model.Habit)
	}{
		{"empty name", func(h *model.Habit) { h.Name = "  " }},
		{"zero goal", func(h *model.Habit) { h.Goal = 0 }},
		{"negative goal", func(h *model.Habit) { h.Goal = -2 }},
		{"empty unit", func(h *model.Habit) { h.Unit = "" }},
		{"bad frequency", func(h *model.Habit) { h.Frequency = "hourly" }},
		{"bad reminder time", func(h *model.Habit) { h.Reminders = []string{"25:00"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), testutil.Habit(tt.mutate))
			if !validation.IsValidationError(err) {
				t.Errorf("err = %v, want a validation error", err)
			}
		})
	}
}

func TestUpdateReschedulesReminders(t *testing.T) {
	sched := &recordingScheduler{}
	svc := NewService(testutil.NewTestStore(t), sched, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, testutil.Habit(nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Reminders = []string{"09:00", "18:00"}
	if err := svc.Update(ctx, created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(sched.cancelled) != 1 || sched.cancelled[0] != created.ID {
		t.Errorf("cancelled = %v, want [%d]", sched.cancelled, created.ID)
	}
	if len(sched.scheduled) != 2 {
		t.Errorf("scheduled %d times, want 2 (create + update)", len(sched.scheduled))
	}
}

func TestDeleteCancelsReminders(t *testing.T) {
	sched := &recordingScheduler{}
	svc := NewService(testutil.NewTestStore(t), sched, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, testutil.Habit(nil))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(sched.cancelled) != 1 {
		t.Errorf("cancelled = %v, want one entry", sched.cancelled)
	}

	if _, err := svc.Get(ctx, created.ID); err != ErrNotFound {
		t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
	}
}

func TestForDateFiltersByRecurrence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	daily := testutil.SeedHabit(t, svc.store, testutil.Habit(func(h *model.Habit) {
		h.Name = "Daily"
	}))
	testutil.SeedHabit(t, svc.store, testutil.Habit(func(h *model.Habit) {
		h.Name = "Weekly Monday"
		h.Frequency = model.FrequencyWeekly
		h.TrackingDays = []string{"Mon"}
	}))

	// 2026-08-25 is a Tuesday, so only the daily habit applies.
	tuesday := date(2026, time.August, 25)
	habits, err := svc.ForDate(ctx, tuesday, FilterAll)
	if err != nil {
		t.Fatalf("ForDate: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != daily.ID {
		t.Fatalf("got %d habits, want only the daily one", len(habits))
	}
}

func TestSetCompletedIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seeded := testutil.SeedHabit(t, svc.store, testutil.Habit(nil))
	day := date(2026, time.August, 20)

	for i := 0; i < 3; i++ {
		if err := svc.SetCompleted(ctx, seeded.ID, day, true); err != nil {
			t.Fatalf("SetCompleted #%d: %v", i, err)
		}
	}

	start, end := DayBounds(day)
	count, err := svc.store.CompletionCountInRange(ctx, start, end)
	if err != nil {
		t.Fatalf("CompletionCountInRange: %v", err)
	}
	if count != 1 {
		t.Errorf("completion count = %d, want 1 after repeated marking", count)
	}

	if err := svc.SetCompleted(ctx, seeded.ID, day, false); err != nil {
		t.Fatalf("unmark: %v", err)
	}
	count, err = svc.store.CompletionCountInRange(ctx, start, end)
	if err != nil {
		t.Fatalf("CompletionCountInRange: %v", err)
	}
	if count != 0 {
		t.Errorf("completion count = %d, want 0 after unmarking", count)
	}
}

func TestSetCompletedTodayUpdatesLiveProgress(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seeded := testutil.SeedHabit(t, svc.store, testutil.Habit(func(h *model.Habit) {
		h.Goal = 8
	}))

	if err := svc.SetCompleted(ctx, seeded.ID, time.Now(), true); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}

	h, err := svc.Get(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !h.Completed || h.Progress != 8 {
		t.Errorf("today's completion should set live fields, got progress=%d completed=%v", h.Progress, h.Completed)
	}
}

func TestSetCompletedPastDayLeavesLiveProgress(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seeded := testutil.SeedHabit(t, svc.store, testutil.Habit(nil))
	past := date(2026, time.January, 5)

	if err := svc.SetCompleted(ctx, seeded.ID, past, true); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}

	h, err := svc.Get(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if h.Completed || h.Progress != 0 {
		t.Errorf("past completion must not touch live fields, got progress=%d completed=%v", h.Progress, h.Completed)
	}
}

func TestSubscribeSignalsOnMutation(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := svc.Subscribe(ctx)

	if _, err := svc.Create(ctx, testutil.Habit(nil)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal after Create")
	}

	cancel()
	select {
	case _, ok := <-ch:
		if ok {
			// A buffered signal may still be pending; the close follows.
			_, ok = <-ch
			if ok {
				t.Fatal("channel should be closed after ctx ends")
			}
		}
	case <-time.After(time.Second):
		t.Fatal("channel should be closed after ctx ends")
	}
}
