// Package validation checks user input before any write or network call
// is attempted. Failures are reported as *Error and handled locally at
// the command layer.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"habitchain/internal/model"
)

// Error describes a rejected input field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err (or any error in its chain) is a
// validation Error.
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	reminderPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)
)

// ValidateHabit checks the user-editable habit fields.
func ValidateHabit(h model.Habit) error {
	if strings.TrimSpace(h.Name) == "" {
		return &Error{Field: "name", Message: "must not be empty"}
	}
	if h.Goal <= 0 {
		return &Error{Field: "goal", Message: "must be a positive number"}
	}
	if strings.TrimSpace(h.Unit) == "" {
		return &Error{Field: "unit", Message: "must not be empty"}
	}
	switch h.Frequency {
	case model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyMonthly:
	default:
		return &Error{
			Field:   "frequency",
			Message: fmt.Sprintf("must be daily, weekly, or monthly, got %q", h.Frequency),
		}
	}
	for _, r := range h.Reminders {
		if !reminderPattern.MatchString(r) {
			return &Error{
				Field:   "reminders",
				Message: fmt.Sprintf("%q is not a valid HH:MM time", r),
			}
		}
	}
	return nil
}

// ValidateReminderTime checks a single "HH:MM" reminder time.
func ValidateReminderTime(t string) error {
	if !reminderPattern.MatchString(t) {
		return &Error{
			Field:   "reminders",
			Message: fmt.Sprintf("%q is not a valid HH:MM time", t),
		}
	}
	return nil
}

// ValidateEmail checks the email address format.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &Error{Field: "email", Message: "not a valid email address"}
	}
	return nil
}

// ValidatePassword checks the password against the minimum length rule.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &Error{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// ValidateRegistration checks a sign-up request: email format, password
// length, and that the confirmation matches.
func ValidateRegistration(email, password, confirm string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return &Error{Field: "password", Message: "passwords do not match"}
	}
	return nil
}
