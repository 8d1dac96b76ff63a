package model

// Session is one normalized billable time interval attributed to a client.
// Sessions are created once during parsing and never mutated.
type Session struct {
	ClientName      string  `json:"client_name"`
	Date            string  `json:"date"`       // calendar date, 2006-01-02
	StartTime       string  `json:"start_time"` // local time of day, 15:04
	EndTime         string  `json:"end_time"`
	DurationMinutes int     `json:"duration_minutes"`
	DurationHours   float64 `json:"duration_hours"`
}

// PricedSession is a Session plus the billable amount at a given hourly rate.
// It is derived, not mutated in place: re-aggregating with a different rate
// produces fresh values.
type PricedSession struct {
	Session
	Amount float64 `json:"amount"`
}

// ClientGroup is the ordered set of priced sessions sharing a client name.
// Groups are kept in first-seen order to give a stable display order.
type ClientGroup struct {
	ClientName string          `json:"client_name"`
	Sessions   []PricedSession `json:"sessions"`
}

// TotalHours sums the hours of all sessions in the group.
func (g ClientGroup) TotalHours() float64 {
	var h float64
	for _, s := range g.Sessions {
		h += s.DurationHours
	}
	return h
}

// TotalAmount sums the billable amounts of all sessions in the group.
func (g ClientGroup) TotalAmount() float64 {
	var a float64
	for _, s := range g.Sessions {
		a += s.Amount
	}
	return a
}
