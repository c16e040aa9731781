// Stats command: weekly series and today's rollup.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show weekly completions and today's progress",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	weekly, err := application.Stats.Weekly(ctx)
	if err != nil {
		return err
	}

	today, err := application.Stats.Today(ctx)
	if err != nil {
		return err
	}

	fmt.Println(renderStats(weekly, today))
	return nil
}
