// Package notify delivers habit reminder notifications. All reminders
// flow through one fixed high-priority channel.
package notify

import "context"

// ChannelHabitReminders is the single notification channel for habit
// reminders.
const ChannelHabitReminders = "habit-reminders"

// Notification is one message pushed to the user.
type Notification struct {
	Channel string
	Title   string
	Message string
	HabitID int64
}

// Notifier sends a notification through a delivery channel.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
