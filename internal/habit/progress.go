package habit

import (
	"context"

	"habitchain/internal/model"
)

// Progress operations apply an increment, decrement, reset, or absolute
// set to a habit's daily progress. The new value is clamped to [0, goal]
// before the completed flag is derived, and the full habit record is
// written back. Reaching the goal records today's completion; dropping
// below it removes today's record, keeping the live flag and the
// completion history in step.

// IncrementProgress adds one to the habit's progress.
func (s *Service) IncrementProgress(ctx context.Context, id int64) (model.Habit, error) {
	return s.applyProgress(ctx, id, func(h model.Habit) int { return h.Progress + 1 })
}

// DecrementProgress subtracts one from the habit's progress.
func (s *Service) DecrementProgress(ctx context.Context, id int64) (model.Habit, error) {
	return s.applyProgress(ctx, id, func(h model.Habit) int { return h.Progress - 1 })
}

// ResetProgress sets the habit's progress back to zero.
func (s *Service) ResetProgress(ctx context.Context, id int64) (model.Habit, error) {
	return s.applyProgress(ctx, id, func(model.Habit) int { return 0 })
}

// SetProgress sets the habit's progress to an absolute value.
func (s *Service) SetProgress(ctx context.Context, id int64, value int) (model.Habit, error) {
	return s.applyProgress(ctx, id, func(model.Habit) int { return value })
}

// applyProgress runs one read-clamp-write cycle under the habit's lock.
func (s *Service) applyProgress(ctx context.Context, id int64, next func(model.Habit) int) (model.Habit, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	stored, err := s.store.HabitByID(ctx, id)
	if err != nil {
		return model.Habit{}, err
	}
	if stored == nil {
		return model.Habit{}, ErrNotFound
	}

	h := *stored
	wasCompleted := h.Completed

	h.Progress = clamp(next(h), 0, h.Goal)
	h.Completed = h.Progress >= h.Goal

	if err := s.store.UpdateHabit(ctx, h); err != nil {
		return model.Habit{}, err
	}

	if err := s.syncTodayCompletion(ctx, h, wasCompleted); err != nil {
		return model.Habit{}, err
	}

	s.notifyChanged()
	return h, nil
}

// syncTodayCompletion keeps today's completion record in step with the
// live completed flag after a progress write.
func (s *Service) syncTodayCompletion(ctx context.Context, h model.Habit, wasCompleted bool) error {
	if h.Completed == wasCompleted {
		return nil
	}

	now := s.now()
	start, end := DayBounds(now)
	if err := s.store.DeleteCompletions(ctx, h.ID, start, end); err != nil {
		return err
	}

	if h.Completed {
		_, err := s.store.InsertCompletion(ctx, model.Completion{
			HabitID:     h.ID,
			CompletedAt: now,
		})
		return err
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
