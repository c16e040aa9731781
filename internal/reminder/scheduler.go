// Package reminder computes next-fire delays for habit reminder times and
// arms one deferred one-shot notification job per reminder. Jobs are
// tagged by habit id so a habit's whole reminder set can be cancelled and
// replaced together; there is no diffing of individual times.
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"habitchain/internal/jobs"
	"habitchain/internal/model"
)

// Job payload keys.
const (
	KeyHabitID   = "habit_id"
	KeyHabitName = "habit_name"
	KeyMessage   = "reminder_message"
	KeyTime      = "reminder_time"
)

// Tag returns the cancellation tag shared by all of a habit's reminders.
func Tag(habitID int64) string {
	return fmt.Sprintf("reminder_%d", habitID)
}

// jobName uniquely identifies one reminder time of one habit, so
// resubmitting replaces the pending job instead of duplicating it.
func jobName(habitID int64, hhmm string) string {
	return fmt.Sprintf("reminder_%d_%s", habitID, hhmm)
}

// NextFireDelay returns the delay from now until the next occurrence of
// the "HH:MM" time of day: later today when the time is strictly in the
// future, otherwise tomorrow. A reminder equal to now, to the second,
// counts as already passed and is scheduled for tomorrow; exact-equality
// timing is racy either way, so one rule is applied consistently.
func NextFireDelay(now time.Time, hhmm string) (time.Duration, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("parsing reminder time %q: want HH:MM", hhmm)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("parsing reminder time %q: bad hour", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("parsing reminder time %q: bad minute", hhmm)
	}

	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return target.Sub(now), nil
}

// Scheduler arms and disarms reminder jobs for habits.
type Scheduler struct {
	runner *jobs.Runner
	logger *zap.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewScheduler creates a scheduler backed by the given job runner.
func NewScheduler(runner *jobs.Runner, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		runner: runner,
		logger: logger,
		now:    time.Now,
	}
}

// Schedule submits one deferred job per reminder time on the habit.
// Submission failures are not retried here; the runner owns execution.
func (s *Scheduler) Schedule(h model.Habit) error {
	now := s.now()

	for _, hhmm := range h.Reminders {
		delay, err := NextFireDelay(now, hhmm)
		if err != nil {
			return err
		}

		payload := map[string]string{
			KeyHabitID:   strconv.FormatInt(h.ID, 10),
			KeyHabitName: h.Name,
			KeyMessage:   h.ReminderMessage,
			KeyTime:      hhmm,
		}
		s.runner.Submit(Tag(h.ID), jobName(h.ID, hhmm), payload, delay)

		s.logger.Debug("reminder armed",
			zap.Int64("habit_id", h.ID),
			zap.String("time", hhmm),
			zap.Duration("delay", delay),
		)
	}
	return nil
}

// Cancel disarms every pending reminder for the habit.
func (s *Scheduler) Cancel(habitID int64) {
	cancelled := s.runner.CancelTag(Tag(habitID))
	if cancelled > 0 {
		s.logger.Debug("reminders cancelled",
			zap.Int64("habit_id", habitID),
			zap.Int("count", cancelled),
		)
	}
}
