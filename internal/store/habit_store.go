package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"habitchain/internal/model"
)

// Habits returns every stored habit.
func (s *SQLiteStore) Habits(ctx context.Context) ([]model.Habit, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM habits ORDER BY id")
	if err != nil {
		return nil, storageErr("querying habits", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating habits", err)
	}
	return habits, nil
}

// HabitByID returns the habit with the given id, or nil when it does not exist.
func (s *SQLiteStore) HabitByID(ctx context.Context, id int64) (*model.Habit, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM habits WHERE id = ?", id)
	if err != nil {
		return nil, storageErr(fmt.Sprintf("querying habit %d", id), err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, storageErr(fmt.Sprintf("querying habit %d", id), err)
		}
		return nil, nil
	}

	h, err := scanHabit(rows)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// InsertHabit stores a new habit and returns its assigned id.
func (s *SQLiteStore) InsertHabit(ctx context.Context, h model.Habit) (int64, error) {
	trackingDays, reminders, err := marshalLists(h)
	if err != nil {
		return 0, err
	}

	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO habits (
			name, category, icon, color, goal, unit, frequency,
			tracking_days, reminders, reminder_message,
			progress, is_completed, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.Name, h.Category, h.Icon, h.Color, h.Goal, h.Unit, string(h.Frequency),
		trackingDays, reminders, h.ReminderMessage,
		h.Progress, boolToInt(h.Completed), h.CreatedAt.UTC(),
	)
	if err != nil {
		return 0, storageErr("inserting habit", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("reading inserted habit id", err)
	}
	return id, nil
}

// UpdateHabit replaces the stored habit in full.
func (s *SQLiteStore) UpdateHabit(ctx context.Context, h model.Habit) error {
	trackingDays, reminders, err := marshalLists(h)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE habits SET
			name = ?, category = ?, icon = ?, color = ?, goal = ?, unit = ?,
			frequency = ?, tracking_days = ?, reminders = ?,
			reminder_message = ?, progress = ?, is_completed = ?
		WHERE id = ?`,
		h.Name, h.Category, h.Icon, h.Color, h.Goal, h.Unit,
		string(h.Frequency), trackingDays, reminders,
		h.ReminderMessage, h.Progress, boolToInt(h.Completed),
		h.ID,
	)
	if err != nil {
		return storageErr(fmt.Sprintf("updating habit %d", h.ID), err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr(fmt.Sprintf("updating habit %d", h.ID), err)
	}
	if affected == 0 {
		return storageErr(fmt.Sprintf("updating habit %d", h.ID), sql.ErrNoRows)
	}
	return nil
}

// DeleteHabit removes a habit and all of its completion records.
func (s *SQLiteStore) DeleteHabit(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("beginning delete transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM habit_completions WHERE habit_id = ?", id,
	); err != nil {
		return storageErr(fmt.Sprintf("deleting completions for habit %d", id), err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", id); err != nil {
		return storageErr(fmt.Sprintf("deleting habit %d", id), err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr(fmt.Sprintf("committing delete of habit %d", id), err)
	}
	return nil
}

// HabitCount returns the total number of stored habits.
func (s *SQLiteStore) HabitCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM habits")
	if err != nil {
		return 0, storageErr("counting habits", err)
	}
	return count, nil
}

// marshalLists serializes the habit's list-valued fields for storage.
// JSON arrays are the one canonical encoding at the storage boundary.
func marshalLists(h model.Habit) (trackingDays, reminders string, err error) {
	td, err := json.Marshal(emptyIfNil(h.TrackingDays))
	if err != nil {
		return "", "", storageErr("marshaling tracking_days", err)
	}
	rem, err := json.Marshal(emptyIfNil(h.Reminders))
	if err != nil {
		return "", "", storageErr("marshaling reminders", err)
	}
	return string(td), string(rem), nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// scanHabit scans a habit row from a sqlx.Rows result set.
func scanHabit(rows *sqlx.Rows) (model.Habit, error) {
	var (
		h            model.Habit
		frequency    string
		trackingDays string
		reminders    string
		completed    int
		createdAt    time.Time
	)

	err := rows.Scan(
		&h.ID, &h.Name, &h.Category, &h.Icon, &h.Color,
		&h.Goal, &h.Unit, &frequency,
		&trackingDays, &reminders, &h.ReminderMessage,
		&h.Progress, &completed, &createdAt,
	)
	if err != nil {
		return model.Habit{}, storageErr("scanning habit row", err)
	}

	h.Frequency = model.Frequency(frequency)
	h.Completed = completed != 0
	h.CreatedAt = createdAt

	if err := json.Unmarshal([]byte(trackingDays), &h.TrackingDays); err != nil {
		return model.Habit{}, storageErr("unmarshaling tracking_days", err)
	}
	if err := json.Unmarshal([]byte(reminders), &h.Reminders); err != nil {
		return model.Habit{}, storageErr("unmarshaling reminders", err)
	}
	if len(h.TrackingDays) == 0 {
		h.TrackingDays = nil
	}
	if len(h.Reminders) == 0 {
		h.Reminders = nil
	}

	return h, nil
}
