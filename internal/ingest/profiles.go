package ingest

import (
	"fmt"
	"time"

	"churnwatch/internal/table"
)

// Profile is one normalized customer profile row. Profiles are the source of
// truth for customer identity: the final report has exactly one row per
// distinct profile UserID.
type Profile struct {
	UserID           string
	SubscriptionType string
	MonthlyCharge    float64
	PayingFlag       bool
}

// UsageEvent is one normalized usage log row. Timestamp is nil when the raw
// cell failed to parse; such rows never enter a window.
type UsageEvent struct {
	UserID      string
	Timestamp   *time.Time
	DurationMin float64
}

// Ticket is one normalized support ticket row.
type Ticket struct {
	UserID   string
	Opened   *time.Time
	Status   string
	Severity string
}

// BillingRecord is one normalized billing status row. A customer may carry
// several (historical) records.
type BillingRecord struct {
	UserID                string
	CancellationRequested bool
	PaymentIssue          bool
	DaysSinceLastLogin    int
	MonthlyCharge         float64
}

// NormalizeProfiles resolves and coerces the profiles extract. A missing
// user-id column is a fatal configuration error; the remaining fields fall
// back to documented defaults.
func NormalizeProfiles(t *table.Table) ([]Profile, error) {
	idCol, ok := table.Resolve(t.Columns, profileIDKeywords)
	if !ok {
		return nil, fmt.Errorf("profiles: no user id column among %v", t.Columns)
	}
	chargeCol, hasCharge := table.Resolve(t.Columns, monthlyChargeKeywords)
	subCol, hasSub := table.Resolve(t.Columns, subscriptionKeywords)
	payCol, hasPay := table.Resolve(t.Columns, payingFlagKeywords)

	profiles := make([]Profile, 0, t.RowCount())
	for row := 0; row < t.RowCount(); row++ {
		p := Profile{
			UserID:           t.Cell(row, idCol),
			SubscriptionType: "unknown",
			PayingFlag:       true,
		}
		if hasCharge {
			p.MonthlyCharge = table.ParseAmount(t.Cell(row, chargeCol), 0)
		}
		if hasSub {
			if sub := t.Cell(row, subCol); sub != "" {
				p.SubscriptionType = sub
			}
		}
		if hasPay {
			p.PayingFlag = table.ParseFlag(t.Cell(row, payCol))
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
