package features

import (
	"strings"

	"churnwatch/internal/ingest"
)

// UsageAggregate holds per-customer usage rollups for one window.
type UsageAggregate struct {
	TotalMinutes float64
	SessionCount int
	ActiveDays   int
}

// TicketAggregate holds per-customer ticket rollups for the current window.
type TicketAggregate struct {
	UnresolvedCount int
	TotalTickets    int
	HighSevCount    int
}

// BillingAggregate holds per-customer rollups across all billing records.
type BillingAggregate struct {
	CancellationRequested bool
	PaymentIssuesCount    int
	AvgDaysSinceLogin     float64
	AvgMonthlyCharge      float64
}

// resolvedStatuses and highSeverities drive the ticket rollup; matching is
// case-insensitive on the trimmed cell.
var resolvedStatuses = map[string]bool{
	"resolved": true,
	"closed":   true,
	"done":     true,
	"fixed":    true,
}

var highSeverities = map[string]bool{
	"high":     true,
	"critical": true,
	"sev 1":    true,
	"p1":       true,
}

// AggregateUsage groups window-member events by user and computes the sum of
// session minutes, the event count, and the number of distinct calendar days
// with at least one event. Users with no events in the window simply have no
// entry; the join engine fills zeros.
func AggregateUsage(events []ingest.UsageEvent, w Window) map[string]UsageAggregate {
	result := make(map[string]UsageAggregate)
	days := make(map[string]map[string]bool)

	for _, e := range events {
		if !w.Contains(e.Timestamp) {
			continue
		}
		agg := result[e.UserID]
		agg.TotalMinutes += e.DurationMin
		agg.SessionCount++
		result[e.UserID] = agg

		day := e.Timestamp.Format("2006-01-02")
		if days[e.UserID] == nil {
			days[e.UserID] = make(map[string]bool)
		}
		days[e.UserID][day] = true
	}

	for user, seen := range days {
		agg := result[user]
		agg.ActiveDays = len(seen)
		result[user] = agg
	}
	return result
}

// AggregateTickets groups tickets opened within the window by user. A ticket
// counts as unresolved unless its status is one of the terminal spellings,
// and as high severity when its severity matches the escalation set.
func AggregateTickets(tickets []ingest.Ticket, w Window) map[string]TicketAggregate {
	result := make(map[string]TicketAggregate)
	for _, tk := range tickets {
		if !w.Contains(tk.Opened) {
			continue
		}
		agg := result[tk.UserID]
		agg.TotalTickets++
		if !resolvedStatuses[normalize(tk.Status)] {
			agg.UnresolvedCount++
		}
		if highSeverities[normalize(tk.Severity)] {
			agg.HighSevCount++
		}
		result[tk.UserID] = agg
	}
	return result
}

// AggregateBilling rolls up all billing records per user, with no window
// filter: cancellation is a logical OR, payment issues a count, and the
// last-login distance and monthly charge are means across records.
func AggregateBilling(records []ingest.BillingRecord) map[string]BillingAggregate {
	type totals struct {
		count     int
		days      float64
		charge    float64
		issues    int
		cancelled bool
	}
	byUser := make(map[string]*totals)
	for _, r := range records {
		t := byUser[r.UserID]
		if t == nil {
			t = &totals{}
			byUser[r.UserID] = t
		}
		t.count++
		t.days += float64(r.DaysSinceLastLogin)
		t.charge += r.MonthlyCharge
		if r.PaymentIssue {
			t.issues++
		}
		if r.CancellationRequested {
			t.cancelled = true
		}
	}

	result := make(map[string]BillingAggregate, len(byUser))
	for user, t := range byUser {
		result[user] = BillingAggregate{
			CancellationRequested: t.cancelled,
			PaymentIssuesCount:    t.issues,
			AvgDaysSinceLogin:     t.days / float64(t.count),
			AvgMonthlyCharge:      t.charge / float64(t.count),
		}
	}
	return result
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
