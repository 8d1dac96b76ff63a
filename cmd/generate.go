package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webdevsha/solazyinvoice/internal/billing"
	"github.com/webdevsha/solazyinvoice/internal/config"
	"github.com/webdevsha/solazyinvoice/internal/model"
	"github.com/webdevsha/solazyinvoice/internal/parse"
	"github.com/webdevsha/solazyinvoice/internal/pdf"
	"github.com/webdevsha/solazyinvoice/internal/timecalc"
	"github.com/webdevsha/solazyinvoice/internal/toast"
)

var (
	generateRate            float64
	generateMinDuration     float64
	generateInvoiceDate     string
	generateDiscount        float64
	generateTax             float64
	generateBusinessDetails string
	generateOutDir          string
)

var generateCmd = &cobra.Command{
	Use:   "generate <sessions.csv>",
	Short: "Generate per-client PDF invoices from a session-log CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().Float64Var(&generateRate, "rate", 0, "Hourly rate (RM)")
	generateCmd.Flags().Float64Var(&generateMinDuration, "min-duration", 0, "Minimum billable duration in hours")
	generateCmd.Flags().StringVar(&generateInvoiceDate, "invoice-date", "", "Invoice date (YYYY-MM-DD, default today)")
	generateCmd.Flags().Float64Var(&generateDiscount, "discount", 0, "Discount percent")
	generateCmd.Flags().Float64Var(&generateTax, "tax", 0, "Tax percent")
	generateCmd.Flags().StringVar(&generateBusinessDetails, "business-details", "", "Free-text business details for the notes block")
	generateCmd.Flags().StringVar(&generateOutDir, "out-dir", ".", "Directory for the generated PDFs")
}

// settingsFromFlags loads configured settings and applies only the flags
// the user actually set, yielding the snapshot for this run.
func settingsFromFlags(cmd *cobra.Command) (model.Settings, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return model.Settings{}, err
	}
	s := cfg.Billing

	if cmd.Flags().Changed("rate") {
		s.HourlyRate = generateRate
	}
	if cmd.Flags().Changed("min-duration") {
		s.MinDuration = generateMinDuration
	}
	if cmd.Flags().Changed("invoice-date") {
		s.InvoiceDate = generateInvoiceDate
	}
	if cmd.Flags().Changed("discount") {
		s.Discount = generateDiscount
	}
	if cmd.Flags().Changed("tax") {
		s.Tax = generateTax
	}
	if cmd.Flags().Changed("business-details") {
		s.BusinessDetails = generateBusinessDetails
	}

	if s.HourlyRate < 0 || s.MinDuration < 0 {
		return model.Settings{}, fmt.Errorf("rate and min-duration must not be negative")
	}
	if _, err := timecalc.ParseISODate(s.InvoiceDate); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	settings, err := settingsFromFlags(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sessions, err := parse.ReadSessionsFile(args[0])
	if err != nil {
		printToast(toast.Errorf("CSV Parsing Failed", "%v", err))
		os.Exit(2)
	}

	groups := billing.Aggregate(sessions, settings.HourlyRate, settings.MinDuration)
	if len(groups) == 0 {
		printToast(toast.Errorf("No Valid Sessions", "%v", billing.ErrNoSessions))
		os.Exit(1)
	}

	invoices, err := billing.BuildAll(groups, settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, inv := range invoices {
		path, err := pdf.WriteFile(inv, generateOutDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Printf("  %s  %s  %s\n", inv.InvoiceNumber, billing.FormatWholeMoney(inv.Total), path)
	}

	printToast(toast.Successf("Invoices Generated!", "successfully created %d invoices", len(invoices)))
	return nil
}
