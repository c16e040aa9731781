// Completion toggle commands: done and undone.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	doneDate   string
	undoneDate string
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a habit completed for a date",
	Long: `Done marks a habit completed for a date (today by default). Marking
an already-completed day again has no further effect.

Example:
  habitchain done 3
  habitchain done 3 --date 2026-08-24`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetCompleted(cmd, args[0], doneDate, true)
	},
}

var undoneCmd = &cobra.Command{
	Use:   "undone <id>",
	Short: "Unmark a habit's completion for a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetCompleted(cmd, args[0], undoneDate, false)
	},
}

func init() {
	doneCmd.Flags().StringVar(&doneDate, "date", "", "date to mark (YYYY-MM-DD, default today)")
	undoneCmd.Flags().StringVar(&undoneDate, "date", "", "date to unmark (YYYY-MM-DD, default today)")
}

func runSetCompleted(cmd *cobra.Command, idArg, dateArg string, completed bool) error {
	id, err := parseHabitID(idArg)
	if err != nil {
		return err
	}

	date, err := parseDateFlag(dateArg)
	if err != nil {
		return fmt.Errorf("parsing --date: %w", err)
	}

	if err := application.Habits.SetCompleted(cmd.Context(), id, date, completed); err != nil {
		return err
	}

	state := "completed"
	if !completed {
		state = "not completed"
	}
	fmt.Printf("Habit %d marked %s for %s\n", id, state, date.Format("2006-01-02"))
	return nil
}
