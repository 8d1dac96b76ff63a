package timecalc_test

import (
	"testing"
	"time"

	"github.com/webdevsha/solazyinvoice/internal/timecalc"
)

func TestParseTimestamp(t *testing.T) {
	got, err := timecalc.ParseTimestamp("03/01/2024 09:00:00 AM")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	want := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp = %v, want %v", got, want)
	}
}

func TestParseTimestampPM(t *testing.T) {
	got, err := timecalc.ParseTimestamp("12/31/2023 11:45:30 PM")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	want := time.Date(2023, 12, 31, 23, 45, 30, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp = %v, want %v", got, want)
	}
}

func TestParseTimestampTrimsWhitespace(t *testing.T) {
	if _, err := timecalc.ParseTimestamp("  03/01/2024 09:00:00 AM  "); err != nil {
		t.Errorf("ParseTimestamp with padding: %v", err)
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	invalid := []string{
		"",
		"2024-03-01 09:00",
		"03/01/2024",
		"03/01/2024 09:00:00", // missing meridiem
		"garbage",
	}
	for _, in := range invalid {
		if _, err := timecalc.ParseTimestamp(in); err == nil {
			t.Errorf("ParseTimestamp(%q): expected error", in)
		}
	}
}

func TestParseISODate(t *testing.T) {
	got, err := timecalc.ParseISODate("2024-03-05")
	if err != nil {
		t.Fatalf("ParseISODate: %v", err)
	}
	if got.Year() != 2024 || got.Month() != 3 || got.Day() != 5 {
		t.Errorf("ParseISODate = %v", got)
	}
	if _, err := timecalc.ParseISODate("05/03/2024"); err == nil {
		t.Error("ParseISODate: expected error for non-ISO input")
	}
}

func TestFormatDateGB(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if got := timecalc.FormatDateGB(d); got != "05/03/2024" {
		t.Errorf("FormatDateGB = %q, want %q", got, "05/03/2024")
	}
}

func TestMMDDYY(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "030524"},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "123123"},
		{time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), "010226"},
	}
	for _, tt := range tests {
		if got := timecalc.MMDDYY(tt.date); got != tt.want {
			t.Errorf("MMDDYY(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestDueDate(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	if got := timecalc.DueDate(d); !got.Equal(want) {
		t.Errorf("DueDate = %v, want %v", got, want)
	}

	// Month rollover.
	d = time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	want = time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	if got := timecalc.DueDate(d); !got.Equal(want) {
		t.Errorf("DueDate across month = %v, want %v", got, want)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{90, "1h 30m"},
		{125, "2h 5m"},
	}
	for _, tt := range tests {
		if got := timecalc.FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	if got := timecalc.FormatHours(1.5); got != "1.50" {
		t.Errorf("FormatHours(1.5) = %q, want %q", got, "1.50")
	}
	if got := timecalc.FormatHours(0); got != "0.00" {
		t.Errorf("FormatHours(0) = %q, want %q", got, "0.00")
	}
}
