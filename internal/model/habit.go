package model

import "time"

// Frequency is the recurrence class of a habit.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// WeekdayShort maps a time.Weekday to the short name stored in a habit's
// tracking days ("Mon".."Sun").
var WeekdayShort = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
	time.Sunday:    "Sun",
}

// Habit is a user-defined recurring goal with a numeric target.
//
// Progress and Completed reflect the current calendar day only; completion
// state for other dates is derived from Completion records.
type Habit struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`

	// Goal is the positive target count; Unit labels it (e.g. "glasses").
	Goal int    `json:"goal"`
	Unit string `json:"unit"`

	Frequency Frequency `json:"frequency"`

	// TrackingDays holds weekday short names for weekly habits or
	// day-of-month numbers (as strings) for monthly habits. Unused for
	// daily habits.
	TrackingDays []string `json:"tracking_days,omitempty"`

	// Reminders is the ordered list of "HH:MM" reminder times.
	Reminders       []string `json:"reminders,omitempty"`
	ReminderMessage string   `json:"reminder_message"`

	// Progress is always clamped to [0, Goal].
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`

	CreatedAt time.Time `json:"created_at"`
}

// Completion records that a specific habit was completed on a specific day.
// At most one record per habit per calendar day is maintained.
type Completion struct {
	ID          int64     `json:"id"`
	HabitID     int64     `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
}
