package msgraph_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/webdevsha/solazyinvoice/internal/msgraph"
	"github.com/webdevsha/solazyinvoice/internal/parse"
)

func makeEvent(id, subject, start, end string) msgraph.CalendarEvent {
	return msgraph.CalendarEvent{
		ID:          id,
		Subject:     subject,
		IsAllDay:    false,
		IsCancelled: false,
		Sensitivity: "normal",
		ShowAs:      "busy",
		Start: struct {
			DateTime string `json:"dateTime"`
			TimeZone string `json:"timeZone"`
		}{DateTime: start, TimeZone: "UTC"},
		End: struct {
			DateTime string `json:"dateTime"`
			TimeZone string `json:"timeZone"`
		}{DateTime: end, TimeZone: "UTC"},
	}
}

func TestMapEventToRow(t *testing.T) {
	event := makeEvent("ext-1", "Acme Corp", "2026-02-27T09:00:00", "2026-02-27T10:30:00")
	row, err := msgraph.MapEventToRow(event, "UTC")
	if err != nil {
		t.Fatalf("MapEventToRow: %v", err)
	}
	if row.Topic != "Acme Corp" {
		t.Errorf("Topic = %q, want %q", row.Topic, "Acme Corp")
	}
	if row.Start != "02/27/2026 09:00:00 AM" {
		t.Errorf("Start = %q, want %q", row.Start, "02/27/2026 09:00:00 AM")
	}
	if row.End != "02/27/2026 10:30:00 AM" {
		t.Errorf("End = %q, want %q", row.End, "02/27/2026 10:30:00 AM")
	}
}

func TestMapEventToRow_AfternoonAndFractionalSeconds(t *testing.T) {
	event := makeEvent("ext-2", "Globex", "2026-02-27T13:00:00.0000000", "2026-02-27T14:15:00.0000000")
	row, err := msgraph.MapEventToRow(event, "UTC")
	if err != nil {
		t.Fatalf("MapEventToRow: %v", err)
	}
	if row.Start != "02/27/2026 01:00:00 PM" {
		t.Errorf("Start = %q, want %q", row.Start, "02/27/2026 01:00:00 PM")
	}
	if row.End != "02/27/2026 02:15:00 PM" {
		t.Errorf("End = %q, want %q", row.End, "02/27/2026 02:15:00 PM")
	}
}

func TestMapEventToRow_BadTime(t *testing.T) {
	event := makeEvent("ext-3", "Broken", "yesterday", "2026-02-27T10:00:00")
	if _, err := msgraph.MapEventToRow(event, "UTC"); err == nil {
		t.Fatal("expected error for unparseable start time")
	}
}

func TestWriteSessionCSV_SkipsNonBillable(t *testing.T) {
	events := []msgraph.CalendarEvent{
		makeEvent("ext-1", "Acme Corp", "2026-02-27T09:00:00", "2026-02-27T10:30:00"),
	}

	cancelled := makeEvent("ext-2", "Cancelled", "2026-02-27T11:00:00", "2026-02-27T12:00:00")
	cancelled.IsCancelled = true
	events = append(events, cancelled)

	allDay := makeEvent("ext-3", "Offsite", "2026-02-27T00:00:00", "2026-02-28T00:00:00")
	allDay.IsAllDay = true
	events = append(events, allDay)

	private := makeEvent("ext-4", "Dentist", "2026-02-27T14:00:00", "2026-02-27T15:00:00")
	private.Sensitivity = "private"
	events = append(events, private)

	free := makeEvent("ext-5", "Focus block", "2026-02-27T15:00:00", "2026-02-27T16:00:00")
	free.ShowAs = "free"
	events = append(events, free)

	var buf bytes.Buffer
	result, err := msgraph.WriteSessionCSV(&buf, events, "UTC")
	if err != nil {
		t.Fatalf("WriteSessionCSV: %v", err)
	}
	if result.Exported != 1 {
		t.Errorf("Exported = %d, want 1", result.Exported)
	}
	if result.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", result.Skipped)
	}
	if result.Errors != 0 {
		t.Errorf("Errors = %d, want 0", result.Errors)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header + 1 row", len(lines))
	}
	if lines[0] != "Topic,Start time,End time" {
		t.Errorf("header = %q", lines[0])
	}
}

func TestWriteSessionCSV_CountsMappingErrors(t *testing.T) {
	events := []msgraph.CalendarEvent{
		makeEvent("ext-1", "Broken", "not-a-time", "2026-02-27T10:00:00"),
	}
	var buf bytes.Buffer
	result, err := msgraph.WriteSessionCSV(&buf, events, "UTC")
	if err != nil {
		t.Fatalf("WriteSessionCSV: %v", err)
	}
	if result.Errors != 1 {
		t.Errorf("Errors = %d, want 1", result.Errors)
	}
	if result.Exported != 0 {
		t.Errorf("Exported = %d, want 0", result.Exported)
	}
}

func TestWriteSessionCSV_RoundTripsThroughParser(t *testing.T) {
	events := []msgraph.CalendarEvent{
		makeEvent("ext-1", "Acme Corp", "2026-02-27T09:00:00", "2026-02-27T10:30:00"),
		makeEvent("ext-2", "Globex", "2026-02-27T13:00:00", "2026-02-27T14:00:00"),
	}

	var buf bytes.Buffer
	if _, err := msgraph.WriteSessionCSV(&buf, events, "UTC"); err != nil {
		t.Fatalf("WriteSessionCSV: %v", err)
	}

	sessions, err := parse.ReadSessions(&buf)
	if err != nil {
		t.Fatalf("ReadSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	if sessions[0].ClientName != "Acme Corp" {
		t.Errorf("ClientName = %q, want %q", sessions[0].ClientName, "Acme Corp")
	}
	if sessions[0].DurationMinutes != 90 {
		t.Errorf("DurationMinutes = %d, want 90", sessions[0].DurationMinutes)
	}
	if sessions[1].DurationHours != 1 {
		t.Errorf("DurationHours = %v, want 1", sessions[1].DurationHours)
	}
}
