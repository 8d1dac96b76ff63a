package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webdevsha/solazyinvoice/internal/toast"
)

var rootCmd = &cobra.Command{
	Use:   "solazyinvoice",
	Short: "SoLazyInvoice – session-log CSVs in, client invoices out",
	Long: `solazyinvoice converts a session-log CSV (as exported from a meeting
platform) into per-client PDF invoices. Sessions below a minimum duration
are dropped, the rest are grouped by client and priced at an hourly rate.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(outlookCmd)
	rootCmd.AddCommand(versionCmd)
}

// printToast writes a notification to the terminal: successes to stdout,
// errors to stderr.
func printToast(t toast.Toast) {
	if t.Severity == toast.Error {
		fmt.Fprintln(os.Stderr, t.String())
		return
	}
	fmt.Println(t.String())
}
