package store

import (
	"context"
	"time"

	"habitchain/internal/model"
)

// Completion timestamps are stored as epoch milliseconds.

// CompletionsInRange returns completion records whose timestamp falls
// within [from, to], inclusive.
func (s *SQLiteStore) CompletionsInRange(ctx context.Context, from, to time.Time) ([]model.Completion, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, habit_id, completion_date
		FROM habit_completions
		WHERE completion_date BETWEEN ? AND ?
		ORDER BY completion_date`,
		from.UnixMilli(), to.UnixMilli(),
	)
	if err != nil {
		return nil, storageErr("querying completions", err)
	}
	defer rows.Close()

	var completions []model.Completion
	for rows.Next() {
		var (
			c  model.Completion
			ms int64
		)
		if err := rows.Scan(&c.ID, &c.HabitID, &ms); err != nil {
			return nil, storageErr("scanning completion row", err)
		}
		c.CompletedAt = time.UnixMilli(ms)
		completions = append(completions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating completions", err)
	}
	return completions, nil
}

// InsertCompletion stores a completion record and returns its id.
func (s *SQLiteStore) InsertCompletion(ctx context.Context, c model.Completion) (int64, error) {
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO habit_completions (habit_id, completion_date)
		VALUES (?, ?)`,
		c.HabitID, c.CompletedAt.UnixMilli(),
	)
	if err != nil {
		return 0, storageErr("inserting completion", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("reading inserted completion id", err)
	}
	return id, nil
}

// DeleteCompletions removes a habit's completion records whose timestamp
// falls within [from, to], inclusive.
func (s *SQLiteStore) DeleteCompletions(ctx context.Context, habitID int64, from, to time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM habit_completions
		WHERE habit_id = ? AND completion_date BETWEEN ? AND ?`,
		habitID, from.UnixMilli(), to.UnixMilli(),
	)
	if err != nil {
		return storageErr("deleting completions", err)
	}
	return nil
}

// CompletionCountInRange returns the number of completion records within
// [from, to], inclusive, across all habits.
func (s *SQLiteStore) CompletionCountInRange(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM habit_completions
		WHERE completion_date BETWEEN ? AND ?`,
		from.UnixMilli(), to.UnixMilli(),
	)
	if err != nil {
		return 0, storageErr("counting completions", err)
	}
	return count, nil
}
