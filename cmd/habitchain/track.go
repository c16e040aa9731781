// Progress tracking commands: up, down, reset, set.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track <id> <up|down|reset|set N>",
	Short: "Adjust a habit's progress for today",
	Long: `Track adjusts today's progress count on a habit. Progress is clamped
to the range [0, goal]; reaching the goal marks the habit completed for
today and dropping below it unmarks it.

Example:
  habitchain track 3 up
  habitchain track 3 set 5`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runTrack,
}

func runTrack(cmd *cobra.Command, args []string) error {
	id, err := parseHabitID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc := application.Habits

	switch args[1] {
	case "up":
		h, err := svc.IncrementProgress(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println(renderProgressLine(h))
	case "down":
		h, err := svc.DecrementProgress(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println(renderProgressLine(h))
	case "reset":
		h, err := svc.ResetProgress(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println(renderProgressLine(h))
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("set needs a value: habitchain track %d set N", id)
		}
		value, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid progress value %q", args[2])
		}
		h, err := svc.SetProgress(ctx, id, value)
		if err != nil {
			return err
		}
		fmt.Println(renderProgressLine(h))
	default:
		return fmt.Errorf("unknown track action %q: want up, down, reset, or set", args[1])
	}
	return nil
}
