package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"habitchain/internal/model"
)

// StorageError wraps an underlying I/O or serialization failure in the
// persistence layer. Callers decide whether to surface it or default.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err (or any error in its chain) is a
// StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// storageErr wraps err into a StorageError tagged with the failing operation.
func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Store defines the persistence interface for habits and their
// completion records.
type Store interface {
	// === Habits ===

	// Habits returns every stored habit.
	Habits(ctx context.Context) ([]model.Habit, error)

	// HabitByID returns the habit with the given id, or nil when it
	// does not exist.
	HabitByID(ctx context.Context, id int64) (*model.Habit, error)

	// InsertHabit stores a new habit and returns its assigned id.
	InsertHabit(ctx context.Context, h model.Habit) (int64, error)

	// UpdateHabit replaces the stored habit in full.
	UpdateHabit(ctx context.Context, h model.Habit) error

	// DeleteHabit removes a habit and its completion records.
	DeleteHabit(ctx context.Context, id int64) error

	// HabitCount returns the total number of stored habits.
	HabitCount(ctx context.Context) (int, error)

	// === Completion records ===

	// CompletionsInRange returns completion records whose timestamp falls
	// within [from, to], inclusive.
	CompletionsInRange(ctx context.Context, from, to time.Time) ([]model.Completion, error)

	// InsertCompletion stores a completion record and returns its id.
	InsertCompletion(ctx context.Context, c model.Completion) (int64, error)

	// DeleteCompletions removes a habit's completion records whose
	// timestamp falls within [from, to], inclusive.
	DeleteCompletions(ctx context.Context, habitID int64, from, to time.Time) error

	// CompletionCountInRange returns the number of completion records
	// within [from, to], inclusive, across all habits.
	CompletionCountInRange(ctx context.Context, from, to time.Time) (int, error)

	Close() error
}
