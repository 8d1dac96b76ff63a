package msgraph

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/webdevsha/solazyinvoice/internal/parse"
	"github.com/webdevsha/solazyinvoice/internal/timecalc"
)

// SessionRow is one row of a session-log CSV in the format the billing
// pipeline ingests: the event subject as the client label plus the start
// and end timestamps.
type SessionRow struct {
	Topic string
	Start string
	End   string
}

// ExportResult holds counters for an export run.
type ExportResult struct {
	Exported int
	Skipped  int
	Errors   int
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone
// suffix when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	// Try RFC3339 first (includes timezone offset).
	if t, err := time.Parse(time.RFC3339, dt); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	// Graph returns fractional seconds: "2026-02-27T09:00:00.0000000"
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// shouldSkip reports whether the event is not billable meeting time.
func shouldSkip(event CalendarEvent) bool {
	if event.IsCancelled {
		return true
	}
	if event.IsAllDay {
		return true
	}
	if event.Sensitivity == "private" {
		return true
	}
	if event.ShowAs == "free" {
		return true
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return true
	}
	return false
}

// MapEventToRow converts a Graph calendar event into a session-log row,
// formatting both timestamps in the fixed layout the parser accepts.
func MapEventToRow(event CalendarEvent, timezone string) (SessionRow, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return SessionRow{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return SessionRow{}, fmt.Errorf("parsing end time: %w", err)
	}
	return SessionRow{
		Topic: event.Subject,
		Start: start.Format(timecalc.TimestampLayout),
		End:   end.Format(timecalc.TimestampLayout),
	}, nil
}

// WriteSessionCSV converts events into session rows and writes them as a
// session-log CSV. Cancelled, all-day, private and free events are skipped.
// It prints progress to stdout and returns an ExportResult.
func WriteSessionCSV(w io.Writer, events []CalendarEvent, timezone string) (ExportResult, error) {
	var result ExportResult

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{parse.ColTopic, parse.ColStart, parse.ColEnd}); err != nil {
		return result, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, event := range events {
		if shouldSkip(event) {
			result.Skipped++
			continue
		}

		row, err := MapEventToRow(event, timezone)
		if err != nil {
			fmt.Printf("  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}

		if err := cw.Write([]string{row.Topic, row.Start, row.End}); err != nil {
			return result, fmt.Errorf("writing CSV row: %w", err)
		}
		fmt.Printf("  + Exported: %s\n", event.Subject)
		result.Exported++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return result, fmt.Errorf("flushing CSV: %w", err)
	}
	return result, nil
}
