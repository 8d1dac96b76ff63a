// Package parse reads a session-log CSV export and normalizes its rows
// into model.Sessions. Rows that cannot be normalized are skipped; only
// structural CSV errors abort parsing.
package parse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/webdevsha/solazyinvoice/internal/model"
	"github.com/webdevsha/solazyinvoice/internal/timecalc"
)

// Required column names in the session-log export. The format is fixed
// and not configurable.
const (
	ColTopic = "Topic"
	ColStart = "Start time"
	ColEnd   = "End time"
)

// ErrMissingField marks a row lacking the client label, start or end field.
// Such rows are skipped without a warning.
var ErrMissingField = errors.New("missing required field")

// Normalize validates one raw record and converts it into a Session.
//
// A zero or negative duration (end before start) is not rejected here:
// the minimum-duration filter downstream is the only guard, matching the
// session-log exports this tool consumes.
func Normalize(raw map[string]string) (model.Session, error) {
	topic := raw[ColTopic]
	startRaw := raw[ColStart]
	endRaw := raw[ColEnd]
	if topic == "" || startRaw == "" || endRaw == "" {
		return model.Session{}, ErrMissingField
	}

	start, err := timecalc.ParseTimestamp(startRaw)
	if err != nil {
		return model.Session{}, err
	}
	end, err := timecalc.ParseTimestamp(endRaw)
	if err != nil {
		return model.Session{}, err
	}

	minutes := int(end.Sub(start).Minutes())
	return model.Session{
		ClientName:      strings.TrimSpace(topic),
		Date:            start.Format(timecalc.ISODateLayout),
		StartTime:       start.Format("15:04"),
		EndTime:         end.Format("15:04"),
		DurationMinutes: minutes,
		DurationHours:   float64(minutes) / 60,
	}, nil
}

// ReadSessions parses the CSV stream and returns every row that normalizes
// into a Session, in input order. Rows with a missing required field are
// dropped silently; rows with unparseable timestamps are dropped with a
// warning on stderr. An empty result is not an error at this layer.
func ReadSessions(r io.Reader) ([]model.Session, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var sessions []model.Session
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		raw := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				raw[col] = record[i]
			}
		}

		s, err := Normalize(raw)
		if errors.Is(err, ErrMissingField) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping row: %v\n", err)
			continue
		}
		if s.DurationMinutes < 0 {
			fmt.Fprintf(os.Stderr, "Warning: end before start for client %q on %s\n", s.ClientName, s.Date)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// ReadSessionsFile opens and parses a session-log CSV file.
func ReadSessionsFile(path string) ([]model.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()
	return ReadSessions(f)
}
