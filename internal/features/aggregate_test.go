package features

import (
	"testing"

	"churnwatch/internal/ingest"
)

func TestAggregateUsage(t *testing.T) {
	w := Window{Start: *ts("2025-11-23 00:00:00"), End: *ts("2025-11-30 23:59:59")}

	events := []ingest.UsageEvent{
		{UserID: "U1", Timestamp: ts("2025-11-24 09:00:00"), DurationMin: 30},
		{UserID: "U1", Timestamp: ts("2025-11-24 18:00:00"), DurationMin: 10},
		{UserID: "U1", Timestamp: ts("2025-11-26 09:00:00"), DurationMin: 5},
		{UserID: "U2", Timestamp: ts("2025-11-22 23:59:59"), DurationMin: 100}, // before window
		{UserID: "U2", Timestamp: nil, DurationMin: 100},                       // unparseable
		{UserID: "U3", Timestamp: ts("2025-11-30 23:59:59"), DurationMin: 1},   // boundary
	}

	result := AggregateUsage(events, w)

	u1 := result["U1"]
	if u1.TotalMinutes != 45 || u1.SessionCount != 3 || u1.ActiveDays != 2 {
		t.Errorf("U1 = %+v, want total 45, sessions 3, days 2", u1)
	}
	if _, ok := result["U2"]; ok {
		t.Error("U2 has no window-member events and should be absent")
	}
	if u3 := result["U3"]; u3.SessionCount != 1 {
		t.Errorf("boundary event should be included, got %+v", u3)
	}
}

func TestAggregateTickets(t *testing.T) {
	w := Window{Start: *ts("2025-11-23 00:00:00"), End: *ts("2025-11-30 23:59:59")}

	tickets := []ingest.Ticket{
		{UserID: "U1", Opened: ts("2025-11-24 09:00:00"), Status: "Open", Severity: "High"},
		{UserID: "U1", Opened: ts("2025-11-25 09:00:00"), Status: "RESOLVED", Severity: "low"},
		{UserID: "U1", Opened: ts("2025-11-26 09:00:00"), Status: "pending", Severity: "P1"},
		{UserID: "U1", Opened: ts("2025-11-10 09:00:00"), Status: "Open", Severity: "Critical"}, // outside window
		{UserID: "U2", Opened: nil, Status: "Open", Severity: "High"},
	}

	result := AggregateTickets(tickets, w)

	u1 := result["U1"]
	if u1.TotalTickets != 3 {
		t.Errorf("total = %d, want 3", u1.TotalTickets)
	}
	if u1.UnresolvedCount != 2 {
		t.Errorf("unresolved = %d, want 2 (resolved status is case-insensitive)", u1.UnresolvedCount)
	}
	if u1.HighSevCount != 2 {
		t.Errorf("high severity = %d, want 2", u1.HighSevCount)
	}
	if _, ok := result["U2"]; ok {
		t.Error("nil open date should exclude the ticket from the window")
	}
}

func TestAggregateBilling(t *testing.T) {
	records := []ingest.BillingRecord{
		{UserID: "U1", CancellationRequested: false, PaymentIssue: true, DaysSinceLastLogin: 10, MonthlyCharge: 20},
		{UserID: "U1", CancellationRequested: true, PaymentIssue: true, DaysSinceLastLogin: 30, MonthlyCharge: 40},
		{UserID: "U2", CancellationRequested: false, PaymentIssue: false, DaysSinceLastLogin: 5, MonthlyCharge: 9.5},
	}

	result := AggregateBilling(records)

	u1 := result["U1"]
	if !u1.CancellationRequested {
		t.Error("cancellation should OR across records")
	}
	if u1.PaymentIssuesCount != 2 {
		t.Errorf("payment issues = %d, want 2", u1.PaymentIssuesCount)
	}
	if u1.AvgDaysSinceLogin != 20 {
		t.Errorf("avg days = %v, want 20", u1.AvgDaysSinceLogin)
	}
	if u1.AvgMonthlyCharge != 30 {
		t.Errorf("avg charge = %v, want 30", u1.AvgMonthlyCharge)
	}

	u2 := result["U2"]
	if u2.CancellationRequested || u2.PaymentIssuesCount != 0 || u2.AvgMonthlyCharge != 9.5 {
		t.Errorf("U2 = %+v", u2)
	}
}
