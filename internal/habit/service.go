package habit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"habitchain/internal/model"
	"habitchain/internal/store"
	"habitchain/internal/validation"
)

// ErrNotFound is returned when an operation names a habit that does not exist.
var ErrNotFound = fmt.Errorf("habit not found")

// ReminderScheduler arms and disarms a habit's reminder notifications.
// The service calls Cancel before Schedule under the habit's lock, so a
// reschedule is atomic with respect to other writes to the same habit.
type ReminderScheduler interface {
	Schedule(h model.Habit) error
	Cancel(habitID int64)
}

// Service owns habit CRUD, per-date projection, and completion toggling.
// All read-modify-write sequences for one habit are serialized through a
// per-id mutex.
type Service struct {
	store  store.Store
	sched  ReminderScheduler
	logger *zap.Logger

	locks keyedMutex

	subMu sync.Mutex
	subs  []chan struct{}

	// now is replaceable in tests.
	now func() time.Time
}

// NewService creates a habit service. sched may be nil when reminder
// scheduling is not wired (e.g. one-shot CLI commands).
func NewService(st store.Store, sched ReminderScheduler, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  st,
		sched:  sched,
		logger: logger,
		now:    time.Now,
	}
}

// Create validates and stores a new habit, then arms its reminders.
// The returned habit carries the assigned id.
func (s *Service) Create(ctx context.Context, h model.Habit) (model.Habit, error) {
	if err := validation.ValidateHabit(h); err != nil {
		return model.Habit{}, err
	}

	h.Progress = 0
	h.Completed = false
	h.CreatedAt = s.now()

	id, err := s.store.InsertHabit(ctx, h)
	if err != nil {
		return model.Habit{}, err
	}
	h.ID = id

	s.scheduleReminders(h)
	s.logger.Info("habit created",
		zap.Int64("id", h.ID),
		zap.String("name", h.Name),
		zap.String("frequency", string(h.Frequency)),
	)
	s.notifyChanged()
	return h, nil
}

// Update validates and replaces the stored habit in full, then cancels
// the old reminder set and arms the new one.
func (s *Service) Update(ctx context.Context, h model.Habit) error {
	if err := validation.ValidateHabit(h); err != nil {
		return err
	}

	unlock := s.locks.lock(h.ID)
	defer unlock()

	if err := s.store.UpdateHabit(ctx, h); err != nil {
		return err
	}

	s.cancelReminders(h.ID)
	s.scheduleReminders(h)
	s.logger.Info("habit updated", zap.Int64("id", h.ID))
	s.notifyChanged()
	return nil
}

// Delete removes a habit, its completion records, and its reminders.
func (s *Service) Delete(ctx context.Context, id int64) error {
	unlock := s.locks.lock(id)
	defer unlock()

	s.cancelReminders(id)
	if err := s.store.DeleteHabit(ctx, id); err != nil {
		return err
	}

	s.logger.Info("habit deleted", zap.Int64("id", id))
	s.notifyChanged()
	return nil
}

// Get returns the habit with the given id.
func (s *Service) Get(ctx context.Context, id int64) (model.Habit, error) {
	h, err := s.store.HabitByID(ctx, id)
	if err != nil {
		return model.Habit{}, err
	}
	if h == nil {
		return model.Habit{}, ErrNotFound
	}
	return *h, nil
}

// List returns every stored habit with live (today) state.
func (s *Service) List(ctx context.Context) ([]model.Habit, error) {
	return s.store.Habits(ctx)
}

// ForDate returns the habits tracked on date, each projected to its
// effective completion state for that date, narrowed by the view filter.
func (s *Service) ForDate(ctx context.Context, date time.Time, f Filter) ([]model.Habit, error) {
	habits, err := s.store.Habits(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now()

	var completions []model.Completion
	if !SameDay(date, today) {
		start, end := DayBounds(date)
		completions, err = s.store.CompletionsInRange(ctx, start, end)
		if err != nil {
			return nil, err
		}
	}

	projected := make([]model.Habit, 0, len(habits))
	for _, h := range habits {
		if !AppliesOn(h, date) {
			continue
		}
		projected = append(projected, ProjectForDate(h, date, today, completions))
	}

	return ApplyFilter(projected, f), nil
}

// SetCompleted marks or unmarks a habit as completed for the given
// calendar date. The day's existing completion records are cleared first,
// so toggling repeatedly leaves at most one record per day. When date is
// today the habit's live progress fields are updated as well.
func (s *Service) SetCompleted(ctx context.Context, id int64, date time.Time, completed bool) error {
	unlock := s.locks.lock(id)
	defer unlock()

	h, err := s.store.HabitByID(ctx, id)
	if err != nil {
		return err
	}
	if h == nil {
		return ErrNotFound
	}

	start, end := DayBounds(date)
	if err := s.store.DeleteCompletions(ctx, id, start, end); err != nil {
		return err
	}

	if completed {
		ts := s.now()
		if !SameDay(date, ts) {
			// Pin historical completions to midday so they sit inside
			// the day bounds regardless of DST shifts.
			ts = start.Add(12 * time.Hour)
		}
		if _, err := s.store.InsertCompletion(ctx, model.Completion{
			HabitID:     id,
			CompletedAt: ts,
		}); err != nil {
			return err
		}
	}

	if SameDay(date, s.now()) {
		h.Completed = completed
		if completed {
			h.Progress = h.Goal
		} else {
			h.Progress = 0
		}
		if err := s.store.UpdateHabit(ctx, *h); err != nil {
			return err
		}
	}

	s.notifyChanged()
	return nil
}

// Subscribe returns a channel that receives a signal after every habit
// mutation. The channel is closed when ctx ends. Signals are dropped
// rather than queued when the subscriber is slow.
func (s *Service) Subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		for i, sub := range s.subs {
			if sub == ch {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
		s.subMu.Unlock()
		close(ch)
	}()

	return ch
}

func (s *Service) notifyChanged() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Service) scheduleReminders(h model.Habit) {
	if s.sched == nil {
		return
	}
	if err := s.sched.Schedule(h); err != nil {
		s.logger.Warn("scheduling reminders failed",
			zap.Int64("habit_id", h.ID),
			zap.Error(err),
		)
	}
}

func (s *Service) cancelReminders(id int64) {
	if s.sched == nil {
		return
	}
	s.sched.Cancel(id)
}
