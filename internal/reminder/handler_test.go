package reminder

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"habitchain/internal/model"
	"habitchain/internal/notify"
	"habitchain/tests/testutil"
)

// captureNotifier records every notification it is asked to send.
type captureNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (c *captureNotifier) Send(_ context.Context, n notify.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, n)
	return nil
}

func firePayload(id int64, name, msg, at string) map[string]string {
	return map[string]string{
		KeyHabitID:   strconv.FormatInt(id, 10),
		KeyHabitName: name,
		KeyMessage:   msg,
		KeyTime:      at,
	}
}

func TestHandleFireSendsNotification(t *testing.T) {
	st := testutil.NewTestStore(t)
	seeded := testutil.SeedHabit(t, st, testutil.Habit(func(h *model.Habit) {
		h.Name = "Read"
		h.ReminderMessage = "Time to read!"
	}))

	notifier := &captureNotifier{}
	h := NewHandler(st, notifier, nil)

	h.HandleFire(context.Background(), firePayload(seeded.ID, "Read", "Time to read!", "20:00"))

	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.Title != "Habit Reminder: Read" {
		t.Errorf("title = %q", n.Title)
	}
	if n.Message != "Time to read! (Scheduled for 20:00)" {
		t.Errorf("message = %q", n.Message)
	}
	if n.HabitID != seeded.ID {
		t.Errorf("habit id = %d, want %d", n.HabitID, seeded.ID)
	}
}

func TestHandleFireSuppressesDeletedHabit(t *testing.T) {
	st := testutil.NewTestStore(t)
	notifier := &captureNotifier{}
	h := NewHandler(st, notifier, nil)

	h.HandleFire(context.Background(), firePayload(9999, "Gone", "msg", "08:00"))

	if len(notifier.sent) != 0 {
		t.Errorf("sent %d notifications for a deleted habit, want 0", len(notifier.sent))
	}
}

func TestHandleFireSuppressesCompletedHabit(t *testing.T) {
	st := testutil.NewTestStore(t)
	seeded := testutil.SeedHabit(t, st, testutil.Habit(func(h *model.Habit) {
		h.Progress = 8
		h.Completed = true
	}))

	notifier := &captureNotifier{}
	h := NewHandler(st, notifier, nil)

	h.HandleFire(context.Background(), firePayload(seeded.ID, "Water", "msg", "08:00"))

	if len(notifier.sent) != 0 {
		t.Errorf("sent %d notifications for a completed habit, want 0", len(notifier.sent))
	}
}
