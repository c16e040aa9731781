package reminder

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"habitchain/internal/notify"
	"habitchain/internal/store"
)

// Handler fires reminder jobs: it re-reads the habit at fire time and
// suppresses the notification when the habit no longer exists or is
// already completed.
type Handler struct {
	store    store.Store
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewHandler creates a reminder fire handler.
func NewHandler(st store.Store, notifier notify.Notifier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: st, notifier: notifier, logger: logger}
}

// HandleFire is the jobs.Handler for reminder jobs.
func (h *Handler) HandleFire(ctx context.Context, payload map[string]string) {
	id, err := strconv.ParseInt(payload[KeyHabitID], 10, 64)
	if err != nil {
		h.logger.Warn("reminder fired with bad habit id",
			zap.String("habit_id", payload[KeyHabitID]),
		)
		return
	}

	habit, err := h.store.HabitByID(ctx, id)
	if err != nil {
		h.logger.Warn("reading habit for reminder failed",
			zap.Int64("habit_id", id),
			zap.Error(err),
		)
		return
	}
	if habit == nil || habit.Completed {
		// Deleted or already done today; nothing to remind.
		return
	}

	n := notify.Notification{
		Channel: notify.ChannelHabitReminders,
		Title:   fmt.Sprintf("Habit Reminder: %s", payload[KeyHabitName]),
		Message: fmt.Sprintf("%s (Scheduled for %s)", payload[KeyMessage], payload[KeyTime]),
		HabitID: id,
	}
	if err := h.notifier.Send(ctx, n); err != nil {
		h.logger.Warn("sending reminder notification failed",
			zap.Int64("habit_id", id),
			zap.Error(err),
		)
	}
}
