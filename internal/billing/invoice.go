package billing

import (
	"fmt"
	"math"
	"time"

	"github.com/webdevsha/solazyinvoice/internal/model"
	"github.com/webdevsha/solazyinvoice/internal/timecalc"
)

// CleanToken strips every character that is not an ASCII letter or digit,
// uppercases the rest, and truncates to max characters. Used for invoice
// numbers (max 6) and output filenames (max 10).
func CleanToken(name string, max int) string {
	out := make([]byte, 0, max)
	for i := 0; i < len(name) && len(out) < max; i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-'a'+'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		}
	}
	return string(out)
}

// InvoiceNumber synthesizes the deterministic invoice identifier: the first
// six alphanumeric characters of the client name, uppercased, followed by
// the invoice date as MMDDYY. E.g. "Jane Doe" on 2024-03-05 → JANEDO030524.
func InvoiceNumber(clientName string, invoiceDate time.Time) string {
	return CleanToken(clientName, 6) + timecalc.MMDDYY(invoiceDate)
}

// BuildInvoice computes one invoice for a client group under the given
// settings snapshot. The minimum-duration filter is re-applied in case the
// threshold changed after aggregation; ok is false when no session
// qualifies and no invoice is produced.
//
// Tax applies to the post-discount amount. The total is rounded to whole
// currency units; subtotal, discount and tax keep fractional precision.
func BuildInvoice(group model.ClientGroup, s model.Settings, invoiceDate time.Time) (model.Invoice, bool) {
	var kept []model.PricedSession
	for _, ps := range group.Sessions {
		if ps.DurationHours >= s.MinDuration {
			kept = append(kept, ps)
		}
	}
	if len(kept) == 0 {
		return model.Invoice{}, false
	}

	var subtotal float64
	for _, ps := range kept {
		subtotal += ps.Amount
	}
	discountAmount := subtotal * (s.Discount / 100)
	taxableAmount := subtotal - discountAmount
	taxAmount := taxableAmount * (s.Tax / 100)
	total := int(math.Round(taxableAmount + taxAmount))

	return model.Invoice{
		ClientName:     group.ClientName,
		InvoiceNumber:  InvoiceNumber(group.ClientName, invoiceDate),
		InvoiceDate:    invoiceDate.Format(timecalc.ISODateLayout),
		Sessions:       kept,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          total,
		Settings:       s,
	}, true
}

// BuildAll builds an invoice per client group, discarding any previously
// built list wholesale. Distinct clients whose cleaned names collide on the
// same date would synthesize identical invoice numbers; the second and
// later occurrences get a "-2", "-3", … suffix so no two invoices in one
// run share a number.
func BuildAll(groups []model.ClientGroup, s model.Settings) ([]model.Invoice, error) {
	invoiceDate, err := timecalc.ParseISODate(s.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice date: %w", err)
	}

	var invoices []model.Invoice
	used := make(map[string]int)
	for _, g := range groups {
		inv, ok := BuildInvoice(g, s, invoiceDate)
		if !ok {
			continue
		}
		used[inv.InvoiceNumber]++
		if n := used[inv.InvoiceNumber]; n > 1 {
			inv.InvoiceNumber = fmt.Sprintf("%s-%d", inv.InvoiceNumber, n)
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}
