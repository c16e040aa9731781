package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"habitchain/internal/model"
	"habitchain/internal/store"
)

// NewTestStore creates a throwaway SQLiteStore with all migrations
// applied, backed by a file in the test's temp directory. It is closed
// automatically when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "habitchain.db"))
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedHabit inserts a habit and returns it with the assigned id.
func SeedHabit(t *testing.T, s store.Store, h model.Habit) model.Habit {
	t.Helper()

	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	id, err := s.InsertHabit(context.Background(), h)
	if err != nil {
		t.Fatalf("seeding habit %q: %v", h.Name, err)
	}
	h.ID = id
	return h
}

// Habit returns a valid daily habit with sensible defaults, overridable
// through the mutator.
func Habit(mutate func(*model.Habit)) model.Habit {
	h := model.Habit{
		Name:      "Drink Water",
		Category:  "Health",
		Icon:      "💧",
		Color:     "#4FC3F7",
		Goal:      8,
		Unit:      "glasses",
		Frequency: model.FrequencyDaily,
		CreatedAt: time.Now(),
	}
	if mutate != nil {
		mutate(&h)
	}
	return h
}
