// Remind command: run the reminder daemon.
package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"habitchain/internal/app"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder daemon",
	Long: `Remind runs in the foreground, firing reminder notifications at each
habit's configured times, resetting daily progress at midnight, and
sending an evening summary. Notifications go to Telegram when a bot
token is configured, otherwise to the log.

Stop with Ctrl-C.`,
	RunE: runRemind,
}

var remindTelegram bool

func init() {
	remindCmd.Flags().BoolVar(&remindTelegram, "telegram", false, "require Telegram delivery (fail instead of logging)")
}

func runRemind(cmd *cobra.Command, args []string) error {
	if remindTelegram && application.Config.Telegram.Token == "" {
		return fmt.Errorf("--telegram requires a telegram.token in the config")
	}

	daemon, err := app.NewDaemon(application)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Reminder daemon running. Press Ctrl-C to stop.")
	return daemon.Run(ctx)
}
