package model

// Settings holds the billing configuration in effect for one pipeline run.
// It is passed by value into aggregation and invoice building and embedded
// by value in each Invoice, so later edits never alter built invoices.
type Settings struct {
	HourlyRate      float64 `json:"hourly_rate" mapstructure:"rate"`
	MinDuration     float64 `json:"min_duration" mapstructure:"min_duration"` // hours
	InvoiceDate     string  `json:"invoice_date" mapstructure:"invoice_date"` // 2006-01-02
	Discount        float64 `json:"discount" mapstructure:"discount"`         // percent
	Tax             float64 `json:"tax" mapstructure:"tax"`                   // percent
	BusinessDetails string  `json:"business_details" mapstructure:"business_details"`
}

// Invoice is a priced, dated billing document for one client group.
// Sessions is always non-empty: clients with no qualifying sessions
// produce no invoice.
type Invoice struct {
	ClientName     string          `json:"client_name"`
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceDate    string          `json:"invoice_date"`
	Sessions       []PricedSession `json:"sessions"`
	Subtotal       float64         `json:"subtotal"`
	DiscountAmount float64         `json:"discount_amount"`
	TaxAmount      float64         `json:"tax_amount"`
	Total          int             `json:"total"` // rounded to whole currency units
	Settings       Settings        `json:"settings"`
}

// TotalHours sums the hours of the invoiced sessions.
func (inv Invoice) TotalHours() float64 {
	var h float64
	for _, s := range inv.Sessions {
		h += s.DurationHours
	}
	return h
}

// AverageRate is the effective hourly rate across the invoiced sessions.
func (inv Invoice) AverageRate() float64 {
	h := inv.TotalHours()
	if h == 0 {
		return 0
	}
	return inv.Subtotal / h
}
