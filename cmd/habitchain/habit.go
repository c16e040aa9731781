// Habit management commands: add, list, show, edit, delete.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"habitchain/internal/habit"
	"habitchain/internal/model"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage habits",
}

var (
	addName      string
	addCategory  string
	addIcon      string
	addColor     string
	addGoal      int
	addUnit      string
	addFrequency string
	addDays      []string
	addReminders []string
	addMessage   string
)

var habitAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new habit",
	Long: `Add creates a new habit. With no flags an interactive form is shown;
with --name the habit is created directly from the flags.

Example:
  habitchain habit add
  habitchain habit add --name "Drink Water" --goal 8 --unit glasses
  habitchain habit add --name "Run" --frequency weekly --days Mon,Wed,Fri \
      --reminders 07:00 --message "Shoes on!"`,
	RunE: runHabitAdd,
}

var (
	listDate   string
	listFilter string
)

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits tracked on a date",
	Long: `List shows the habits tracked on a date (today by default) with
their effective progress for that date.

Example:
  habitchain habit list
  habitchain habit list --date 2026-08-24 --filter completed`,
	RunE: runHabitList,
}

var habitShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one habit in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitShow,
}

var habitEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a habit interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitEdit,
}

var deleteYes bool

var habitDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a habit and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitDelete,
}

func init() {
	habitAddCmd.Flags().StringVar(&addName, "name", "", "habit name")
	habitAddCmd.Flags().StringVar(&addCategory, "category", "", "category label")
	habitAddCmd.Flags().StringVar(&addIcon, "icon", "", "icon (emoji)")
	habitAddCmd.Flags().StringVar(&addColor, "color", "", "accent color (hex)")
	habitAddCmd.Flags().IntVar(&addGoal, "goal", 1, "daily target count")
	habitAddCmd.Flags().StringVar(&addUnit, "unit", "times", "unit label for the goal")
	habitAddCmd.Flags().StringVar(&addFrequency, "frequency", "daily", "daily, weekly, or monthly")
	habitAddCmd.Flags().StringSliceVar(&addDays, "days", nil, "tracking days (weekly: Mon..Sun, monthly: 1..31)")
	habitAddCmd.Flags().StringSliceVar(&addReminders, "reminders", nil, "reminder times (HH:MM)")
	habitAddCmd.Flags().StringVar(&addMessage, "message", "", "reminder message")

	habitListCmd.Flags().StringVar(&listDate, "date", "", "date to view (YYYY-MM-DD, default today)")
	habitListCmd.Flags().StringVar(&listFilter, "filter", "all", "all, active, or completed")

	habitDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitShowCmd)
	habitCmd.AddCommand(habitEditCmd)
	habitCmd.AddCommand(habitDeleteCmd)
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	h := model.Habit{
		Name:            addName,
		Category:        addCategory,
		Icon:            addIcon,
		Color:           addColor,
		Goal:            addGoal,
		Unit:            addUnit,
		Frequency:       model.Frequency(addFrequency),
		TrackingDays:    addDays,
		Reminders:       addReminders,
		ReminderMessage: addMessage,
	}

	if addName == "" {
		filled, err := runHabitForm(&h)
		if err != nil {
			return err
		}
		h = filled
	}

	created, err := application.Habits.Create(cmd.Context(), h)
	if err != nil {
		return err
	}

	fmt.Printf("Created habit %d: %s\n", created.ID, renderHabitLine(created))
	return nil
}

func runHabitList(cmd *cobra.Command, args []string) error {
	date, err := parseDateFlag(listDate)
	if err != nil {
		return fmt.Errorf("parsing --date: %w", err)
	}

	habits, err := application.Habits.ForDate(cmd.Context(), date, habit.Filter(listFilter))
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits tracked on", date.Format("2006-01-02"))
		return nil
	}

	fmt.Println(renderHabitList(date, habits))
	return nil
}

func runHabitShow(cmd *cobra.Command, args []string) error {
	id, err := parseHabitID(args[0])
	if err != nil {
		return err
	}

	h, err := application.Habits.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Println(renderHabitDetail(h))
	return nil
}

func runHabitEdit(cmd *cobra.Command, args []string) error {
	id, err := parseHabitID(args[0])
	if err != nil {
		return err
	}

	h, err := application.Habits.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	edited, err := runHabitForm(&h)
	if err != nil {
		return err
	}
	edited.ID = id

	if err := application.Habits.Update(cmd.Context(), edited); err != nil {
		return err
	}

	fmt.Printf("Updated habit %d: %s\n", id, renderHabitLine(edited))
	return nil
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	id, err := parseHabitID(args[0])
	if err != nil {
		return err
	}

	h, err := application.Habits.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	if !deleteYes {
		ok, err := confirmDelete(h.Name)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := application.Habits.Delete(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Printf("Deleted habit %d: %s\n", id, h.Name)
	return nil
}

func parseHabitID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid habit id %q", arg)
	}
	return id, nil
}
