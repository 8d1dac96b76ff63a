package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webdevsha/solazyinvoice/internal/billing"
	"github.com/webdevsha/solazyinvoice/internal/config"
	"github.com/webdevsha/solazyinvoice/internal/model"
	"github.com/webdevsha/solazyinvoice/internal/parse"
	"github.com/webdevsha/solazyinvoice/internal/timecalc"
	"github.com/webdevsha/solazyinvoice/internal/toast"
)

var (
	summaryRate        float64
	summaryMinDuration float64
	summaryFormat      string
)

var summaryCmd = &cobra.Command{
	Use:   "summary <sessions.csv>",
	Short: "Show the per-client billing summary without generating invoices",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().Float64Var(&summaryRate, "rate", 0, "Hourly rate (RM)")
	summaryCmd.Flags().Float64Var(&summaryMinDuration, "min-duration", 0, "Minimum billable duration in hours")
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "md", "Output format: md, csv, json")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rate := cfg.Billing.HourlyRate
	minDuration := cfg.Billing.MinDuration
	if cmd.Flags().Changed("rate") {
		rate = summaryRate
	}
	if cmd.Flags().Changed("min-duration") {
		minDuration = summaryMinDuration
	}

	sessions, err := parse.ReadSessionsFile(args[0])
	if err != nil {
		printToast(toast.Errorf("CSV Parsing Failed", "%v", err))
		os.Exit(2)
	}

	groups := billing.Aggregate(sessions, rate, minDuration)
	if len(groups) == 0 {
		printToast(toast.Errorf("No Valid Sessions", "%v", billing.ErrNoSessions))
		os.Exit(1)
	}

	switch summaryFormat {
	case "json":
		data, err := json.MarshalIndent(groups, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "csv":
		fmt.Println("client,sessions,hours,amount")
		for _, g := range groups {
			fmt.Printf("%s,%d,%s,%.2f\n",
				csvEscape(g.ClientName), len(g.Sessions), timecalc.FormatHours(g.TotalHours()), g.TotalAmount())
		}
	default: // md
		printSummary(groups)
	}
	return nil
}

func printSummary(groups []model.ClientGroup) {
	var totalHours, totalAmount float64
	var totalSessions int

	fmt.Println("Client summary")
	fmt.Println("------------------------------------------------")
	for _, g := range groups {
		fmt.Printf("%-26s%3d  %6sh  %s\n",
			g.ClientName, len(g.Sessions), timecalc.FormatHours(g.TotalHours()), billing.FormatMoney(g.TotalAmount()))
		totalSessions += len(g.Sessions)
		totalHours += g.TotalHours()
		totalAmount += g.TotalAmount()
	}
	fmt.Println("------------------------------------------------")
	fmt.Printf("%-26s%3d  %6sh  %s\n",
		"Total", totalSessions, timecalc.FormatHours(totalHours), billing.FormatMoney(totalAmount))
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
