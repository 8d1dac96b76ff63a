// Package pdf draws the one-page, fixed-layout invoice document.
package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/webdevsha/solazyinvoice/internal/billing"
	"github.com/webdevsha/solazyinvoice/internal/model"
	"github.com/webdevsha/solazyinvoice/internal/timecalc"
)

// Filename returns the output filename for an invoice:
// Invoice_<CLIENTTOKEN>_<invoiceDate>.pdf, where the client token is the
// cleaned, uppercased client name truncated to 10 characters.
func Filename(inv model.Invoice) string {
	return fmt.Sprintf("Invoice_%s_%s.pdf", billing.CleanToken(inv.ClientName, 10), inv.InvoiceDate)
}

// Render draws the invoice onto a fresh A4 page and writes the PDF to w.
func Render(inv model.Invoice, w io.Writer) error {
	invoiceDate, err := timecalc.ParseISODate(inv.InvoiceDate)
	if err != nil {
		return fmt.Errorf("rendering invoice %s: %w", inv.InvoiceNumber, err)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	pageWidth, _ := doc.GetPageSize()

	// Header band with title and amount-due callout.
	doc.SetFillColor(72, 84, 166)
	doc.Rect(0, 0, pageWidth, 40, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 24)
	doc.Text(20, 25, "INVOICE")

	doc.SetFontSize(12)
	doc.Text(pageWidth-70, 18, fmt.Sprintf("Amount Due (%s)", billing.CurrencyCode))
	doc.SetFontSize(20)
	doc.Text(pageWidth-70, 32, billing.FormatWholeMoney(inv.Total))

	doc.SetTextColor(0, 0, 0)

	// Bill-to block.
	y := 65.0
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(20, y, "BILL TO")
	y += 8
	doc.SetFont("Helvetica", "", 10)
	doc.Text(20, y, inv.ClientName)

	// Metadata block.
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(pageWidth-80, 65, "Invoice Number:")
	doc.SetFont("Helvetica", "", 10)
	doc.Text(pageWidth-80, 73, inv.InvoiceNumber)

	doc.SetFont("Helvetica", "B", 10)
	doc.Text(pageWidth-80, 83, "Invoice Date:")
	doc.SetFont("Helvetica", "", 10)
	doc.Text(pageWidth-80, 91, timecalc.FormatDateGB(invoiceDate))

	doc.SetFont("Helvetica", "B", 10)
	doc.Text(pageWidth-80, 101, "Payment Due:")
	doc.SetFont("Helvetica", "", 10)
	doc.Text(pageWidth-80, 109, timecalc.FormatDateGB(timecalc.DueDate(invoiceDate)))

	// Line-item table: one row summarizing the client's sessions.
	y = 130
	doc.SetFillColor(245, 245, 245)
	doc.Rect(20, y-5, pageWidth-40, 12, "F")

	doc.SetFont("Helvetica", "B", 10)
	doc.Text(25, y, "ITEMS")
	doc.Text(90, y, "HOURS")
	doc.Text(130, y, "PRICE")
	doc.Text(160, y, "AMOUNT")

	y += 15
	doc.SetFont("Helvetica", "", 10)
	doc.Text(25, y, fmt.Sprintf("%s Sessions", inv.ClientName))
	doc.Text(90, y, timecalc.FormatHours(inv.TotalHours()))
	doc.Text(130, y, billing.FormatMoney(inv.AverageRate()))
	doc.Text(160, y, billing.FormatMoney(inv.Subtotal))

	// Per-session itemization.
	y += 10
	doc.SetFontSize(8)
	doc.SetTextColor(100, 100, 100)
	for _, s := range inv.Sessions {
		doc.Text(25, y, fmt.Sprintf("%s: %s - %s (%d min)", s.Date, s.StartTime, s.EndTime, s.DurationMinutes))
		y += 4
	}

	// Totals block.
	y += 15
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)
	doc.Text(130, y, "Subtotal:")
	doc.Text(160, y, billing.FormatMoney(inv.Subtotal))
	if inv.DiscountAmount > 0 {
		y += 8
		doc.Text(130, y, fmt.Sprintf("Discount (%g%%):", inv.Settings.Discount))
		doc.Text(160, y, "-"+billing.FormatMoney(inv.DiscountAmount))
	}
	if inv.TaxAmount > 0 {
		y += 8
		doc.Text(130, y, fmt.Sprintf("Tax (%g%%):", inv.Settings.Tax))
		doc.Text(160, y, billing.FormatMoney(inv.TaxAmount))
	}
	y += 8
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(130, y, "Total:")
	doc.Text(160, y, billing.FormatWholeMoney(inv.Total))

	y += 15
	doc.SetFillColor(245, 245, 245)
	doc.Rect(120, y-8, 70, 12, "F")
	doc.Text(125, y, fmt.Sprintf("Amount Due (%s):", billing.CurrencyCode))
	doc.Text(160, y, billing.FormatWholeMoney(inv.Total))

	// Notes block.
	y += 25
	doc.SetFont("Helvetica", "B", 9)
	doc.Text(20, y, "Notes / Terms")
	y += 8
	doc.SetFont("Helvetica", "", 8)
	doc.Text(20, y, "Payment terms: Net 3 days")

	if inv.Settings.BusinessDetails != "" {
		y += 10
		for _, line := range strings.Split(inv.Settings.BusinessDetails, "\n") {
			doc.Text(20, y, strings.TrimSpace(line))
			y += 4
		}
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("writing PDF for invoice %s: %w", inv.InvoiceNumber, err)
	}
	return nil
}

// WriteFile renders the invoice into dir and returns the written path.
func WriteFile(inv model.Invoice, dir string) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}
	path := filepath.Join(dir, Filename(inv))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := Render(inv, f); err != nil {
		return "", err
	}
	return path, nil
}
