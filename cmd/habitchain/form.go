// Interactive huh forms for creating and editing habits.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"habitchain/internal/model"
	"habitchain/internal/validation"
)

// runHabitForm shows the habit form prefilled from h and returns the
// edited habit. List fields are entered comma-separated.
func runHabitForm(h *model.Habit) (model.Habit, error) {
	name := h.Name
	category := h.Category
	icon := h.Icon
	color := h.Color
	goal := strconv.Itoa(h.Goal)
	if h.Goal == 0 {
		goal = "1"
	}
	unit := h.Unit
	frequency := h.Frequency
	if frequency == "" {
		frequency = model.FrequencyDaily
	}
	days := strings.Join(h.TrackingDays, ",")
	reminders := strings.Join(h.Reminders, ",")
	message := h.ReminderMessage

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Category").
				Value(&category),
			huh.NewInput().
				Title("Icon").
				Value(&icon),
			huh.NewInput().
				Title("Color (hex)").
				Value(&color),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Value(&goal).
				Validate(func(s string) error {
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("goal must be a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Unit").
				Value(&unit).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("unit cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[model.Frequency]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", model.FrequencyDaily),
					huh.NewOption("Weekly", model.FrequencyWeekly),
					huh.NewOption("Monthly", model.FrequencyMonthly),
				).
				Value(&frequency),
			huh.NewInput().
				Title("Tracking days").
				Description("Weekly: Mon,Wed,Fri. Monthly: 1,15. Blank for daily.").
				Value(&days),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Reminders").
				Description("Comma-separated HH:MM times, blank for none.").
				Value(&reminders).
				Validate(func(s string) error {
					for _, t := range splitList(s) {
						if err := validation.ValidateReminderTime(t); err != nil {
							return err
						}
					}
					return nil
				}),
			huh.NewInput().
				Title("Reminder message").
				Value(&message),
		),
	)

	if err := form.Run(); err != nil {
		return model.Habit{}, err
	}

	goalValue, err := strconv.Atoi(goal)
	if err != nil {
		return model.Habit{}, fmt.Errorf("parsing goal: %w", err)
	}

	out := *h
	out.Name = strings.TrimSpace(name)
	out.Category = strings.TrimSpace(category)
	out.Icon = strings.TrimSpace(icon)
	out.Color = strings.TrimSpace(color)
	out.Goal = goalValue
	out.Unit = strings.TrimSpace(unit)
	out.Frequency = frequency
	out.TrackingDays = splitList(days)
	out.Reminders = splitList(reminders)
	out.ReminderMessage = strings.TrimSpace(message)
	return out, nil
}

// confirmDelete asks the user to confirm removing the named habit.
func confirmDelete(name string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete %q and all of its history?", name)).
		Value(&ok).
		Run()
	return ok, err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
