package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/webdevsha/solazyinvoice/internal/config"
	"github.com/webdevsha/solazyinvoice/internal/msgraph"
	"github.com/webdevsha/solazyinvoice/internal/timecalc"
)

var (
	outlookExportFrom  string
	outlookExportTo    string
	outlookExportDate  string
	outlookExportToday bool
	outlookExportTZ    string
	outlookExportOut   string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export Outlook calendar events as a session-log CSV",
	Long: `Fetches calendar events from Microsoft Graph and writes them as a
session-log CSV in the format the generate, summary and wizard commands
ingest, so meetings can be billed without a manual platform export.`,
	Args: cobra.NoArgs,
	RunE: runOutlookExport,
}

func init() {
	outlookExportCmd.Flags().StringVar(&outlookExportFrom, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	outlookExportCmd.Flags().StringVar(&outlookExportTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	outlookExportCmd.Flags().StringVar(&outlookExportDate, "date", "", "Export a specific date (YYYY-MM-DD)")
	outlookExportCmd.Flags().BoolVar(&outlookExportToday, "today", false, "Export only today (default)")
	outlookExportCmd.Flags().StringVar(&outlookExportTZ, "timezone", "", "IANA timezone for event times (e.g. Asia/Kuala_Lumpur)")
	outlookExportCmd.Flags().StringVar(&outlookExportOut, "out", "sessions.csv", "Output CSV path (\"-\" for stdout)")
	outlookCmd.AddCommand(outlookExportCmd)
}

func runOutlookExport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	var from, to time.Time

	switch {
	case outlookExportDate != "":
		d, err := timecalc.ParseISODate(outlookExportDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --date value %q: %v\n", outlookExportDate, err)
			os.Exit(1)
		}
		from = timecalc.StartOfDay(d)
		to = timecalc.EndOfDay(d)

	case outlookExportFrom != "" || outlookExportTo != "":
		if outlookExportTo != "" && outlookExportFrom == "" {
			fmt.Fprintln(os.Stderr, "--from is required when --to is specified")
			os.Exit(1)
		}
		var err error
		from, err = timecalc.ParseISODate(outlookExportFrom)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --from value %q: %v\n", outlookExportFrom, err)
			os.Exit(1)
		}
		from = timecalc.StartOfDay(from)

		if outlookExportTo != "" {
			t, err := timecalc.ParseISODate(outlookExportTo)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid --to value %q: %v\n", outlookExportTo, err)
				os.Exit(1)
			}
			to = timecalc.EndOfDay(t)
		} else {
			to = timecalc.EndOfDay(now)
		}

	default:
		// Default: today.
		from = timecalc.StartOfDay(now)
		to = timecalc.EndOfDay(now)
	}

	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	timezone := cfg.Outlook.Timezone
	if outlookExportTZ != "" {
		timezone = outlookExportTZ
	}

	fmt.Printf("Exporting Outlook events (%s → %s)...\n",
		from.Format(timecalc.ISODateLayout), to.Format(timecalc.ISODateLayout))
	fmt.Println()

	ctx := context.Background()

	tok, oauthCfg, err := msgraph.Authenticate(ctx, cfg.Outlook.TenantID, cfg.Outlook.ClientID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}

	client := msgraph.NewClient(ctx, tok, oauthCfg)

	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch calendar events: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if outlookExportOut != "-" {
		f, err := os.Create(outlookExportOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot create %s: %v\n", outlookExportOut, err)
			os.Exit(2)
		}
		defer f.Close()
		out = f
	}

	result, err := msgraph.WriteSessionCSV(out, events, timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  %d exported\n", result.Exported)
	fmt.Printf("  %d skipped\n", result.Skipped)
	if result.Errors > 0 {
		fmt.Printf("  %d errors\n", result.Errors)
		os.Exit(2)
	}
	return nil
}
