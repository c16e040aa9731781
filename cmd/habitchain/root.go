// Root command for the habitchain CLI.
package main

import (
	"time"

	"github.com/spf13/cobra"

	"habitchain/internal/app"
)

// Global flag values.
var (
	flagConfig  string
	flagVerbose bool
)

// application is the wired application, initialized by PersistentPreRunE
// so every subcommand can use it.
var application *app.App

var rootCmd = &cobra.Command{
	Use:   "habitchain",
	Short: "Track daily, weekly, and monthly habits from the terminal",
	Long: `Habitchain is a local-first habit tracker. Habits live in a SQLite
database; reminders, progress, and statistics are handled locally, with
optional sign-in against a hosted identity provider.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(app.Options{
			ConfigPath: flagConfig,
			Verbose:    flagVerbose,
		})
		if err != nil {
			return err
		}
		application = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application == nil {
			return nil
		}
		return application.Close()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/habitchain/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(habitCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(remindCmd)
}

// parseDateFlag parses a --date value, defaulting to today when empty.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}
