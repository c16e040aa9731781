// Quote command: fetch a motivational quote.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"habitchain/internal/model"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print a motivational quote",
	Long: `Quote fetches a random quote from the configured provider. When the
provider is unreachable a built-in placeholder is shown instead.`,
	RunE: runQuote,
}

func runQuote(cmd *cobra.Command, args []string) error {
	q, err := application.Quotes.Random(cmd.Context())
	if err != nil {
		application.Logger.Warn("fetching quote failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Quote service unavailable, showing a classic:")
		q = model.PlaceholderQuote
	}

	fmt.Println(renderQuote(q))
	return nil
}
