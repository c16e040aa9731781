package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to the structured log. It is the
// fallback channel when no external notifier is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Send logs the notification at info level.
func (l *LogNotifier) Send(_ context.Context, n Notification) error {
	l.logger.Info("notification",
		zap.String("channel", n.Channel),
		zap.String("title", n.Title),
		zap.String("message", n.Message),
		zap.Int64("habit_id", n.HabitID),
	)
	return nil
}
