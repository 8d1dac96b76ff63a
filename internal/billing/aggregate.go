// Package billing turns normalized sessions into priced client groups and
// invoices. All functions are pure: re-running with the same inputs
// reproduces the same output with no carried-over state.
package billing

import (
	"errors"

	"github.com/webdevsha/solazyinvoice/internal/model"
)

// ErrNoSessions is reported once when zero sessions survive normalization
// and the minimum-duration filter.
var ErrNoSessions = errors.New("no sessions found that meet the minimum duration requirement")

// Aggregate discards sessions below minDurationHours, prices the survivors
// at hourlyRate, and groups them by client name. Groups appear in
// first-seen order of the client; sessions keep input order.
func Aggregate(sessions []model.Session, hourlyRate, minDurationHours float64) []model.ClientGroup {
	var groups []model.ClientGroup
	index := make(map[string]int)

	for _, s := range sessions {
		if s.DurationHours < minDurationHours {
			continue
		}
		priced := model.PricedSession{
			Session: s,
			Amount:  s.DurationHours * hourlyRate,
		}
		i, seen := index[s.ClientName]
		if !seen {
			i = len(groups)
			index[s.ClientName] = i
			groups = append(groups, model.ClientGroup{ClientName: s.ClientName})
		}
		groups[i].Sessions = append(groups[i].Sessions, priced)
	}
	return groups
}
