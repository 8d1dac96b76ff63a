package timecalc

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the fixed session-log timestamp format
// (US month/day/year with a 12-hour clock and meridiem), e.g.
// "03/01/2024 09:00:00 AM".
const TimestampLayout = "01/02/2006 03:04:05 PM"

// ISODateLayout is the calendar-date format used for invoice dates
// and output filenames.
const ISODateLayout = "2006-01-02"

// ParseTimestamp parses a session-log timestamp. Surrounding whitespace
// is ignored.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// ParseISODate parses a calendar date like "2024-03-05".
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDateGB formats a date as DD/MM/YYYY for invoice display.
func FormatDateGB(t time.Time) string {
	return t.Format("02/01/2006")
}

// MMDDYY formats a date as zero-padded month, day and two-digit year with
// no separators, e.g. 2024-03-05 → "030524". Used in invoice numbers.
func MMDDYY(t time.Time) string {
	return t.Format("010206")
}

// DueDate returns the payment due date: the invoice date plus three
// calendar days.
func DueDate(invoiceDate time.Time) time.Time {
	return invoiceDate.AddDate(0, 0, 3)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// FormatDuration formats whole minutes as a human-readable string like
// "1h 30m" or "45m".
func FormatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatHours formats fractional hours with two decimals, e.g. "1.50".
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}
