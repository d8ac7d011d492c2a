package features

import "churnwatch/internal/ingest"

// CustomerFeatures is the reconciled per-customer view: profile attributes
// left-joined with the window aggregates, absent joins zero-filled.
type CustomerFeatures struct {
	UserID           string
	SubscriptionType string
	PayingFlag       bool
	MonthlyCharge    float64

	TotalMinutes float64
	SessionCount int
	ActiveDays   int

	TotalMinutesPrev float64
	SessionCountPrev int
	ActiveDaysPrev   int

	UnresolvedCount int
	TotalTickets    int
	HighSevCount    int

	CancellationRequested bool
	PaymentIssuesCount    int
	AvgDaysSinceLogin     int
	BillingMonthlyCharge  float64
}

// BuildFeatures assembles one feature row per distinct profile UserID, in
// profile order. Profiles are the key set: customers appearing only in
// usage, tickets, or billing are dropped, and profile-only customers appear
// with zeroed aggregates. The first profile row wins on duplicate ids.
func BuildFeatures(
	profiles []ingest.Profile,
	usageCurr, usagePrev map[string]UsageAggregate,
	tickets map[string]TicketAggregate,
	billing map[string]BillingAggregate,
) []CustomerFeatures {
	rows := make([]CustomerFeatures, 0, len(profiles))
	seen := make(map[string]bool, len(profiles))

	for _, p := range profiles {
		if seen[p.UserID] {
			continue
		}
		seen[p.UserID] = true

		row := CustomerFeatures{
			UserID:            p.UserID,
			SubscriptionType:  p.SubscriptionType,
			PayingFlag:        p.PayingFlag,
			MonthlyCharge:     p.MonthlyCharge,
			AvgDaysSinceLogin: ingest.DefaultDaysSinceLogin,
		}

		if agg, ok := usageCurr[p.UserID]; ok {
			row.TotalMinutes = agg.TotalMinutes
			row.SessionCount = agg.SessionCount
			row.ActiveDays = agg.ActiveDays
		}
		if agg, ok := usagePrev[p.UserID]; ok {
			row.TotalMinutesPrev = agg.TotalMinutes
			row.SessionCountPrev = agg.SessionCount
			row.ActiveDaysPrev = agg.ActiveDays
		}
		if agg, ok := tickets[p.UserID]; ok {
			row.UnresolvedCount = agg.UnresolvedCount
			row.TotalTickets = agg.TotalTickets
			row.HighSevCount = agg.HighSevCount
		}
		if agg, ok := billing[p.UserID]; ok {
			row.CancellationRequested = agg.CancellationRequested
			row.PaymentIssuesCount = agg.PaymentIssuesCount
			row.AvgDaysSinceLogin = int(agg.AvgDaysSinceLogin)
			row.BillingMonthlyCharge = agg.AvgMonthlyCharge
		}

		// The profile charge wins when it carries a real value; zero or
		// negative falls back to the billing mean.
		if row.MonthlyCharge <= 0 {
			row.MonthlyCharge = row.BillingMonthlyCharge
		}

		rows = append(rows, row)
	}
	return rows
}
