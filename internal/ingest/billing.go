package ingest

import (
	"fmt"
	"time"

	"churnwatch/internal/table"

	"github.com/rs/zerolog/log"
)

// DefaultDaysSinceLogin stands in when the last-login date is absent or
// unparseable: effectively "never seen", saturating the inactivity signal.
const DefaultDaysSinceLogin = 9999

// NormalizeBilling resolves and coerces the billing status extract. Only the
// user id column is required. Days-since-last-login are computed against
// reference (the current window end) so re-running an old batch reproduces
// the same report.
func NormalizeBilling(t *table.Table, reference time.Time) ([]BillingRecord, error) {
	idCol, ok := table.Resolve(t.Columns, userIDKeywords)
	if !ok {
		return nil, fmt.Errorf("billing: no user id column among %v", t.Columns)
	}
	cancelCol, hasCancel := table.Resolve(t.Columns, cancellationKeywords)
	paymentCol, hasPayment := table.Resolve(t.Columns, paymentIssueKeywords)
	loginCol, hasLogin := table.Resolve(t.Columns, lastLoginKeywords)
	chargeCol, hasCharge := table.Resolve(t.Columns, billingChargeKeywords)

	records := make([]BillingRecord, 0, t.RowCount())
	missingLogins := 0
	for row := 0; row < t.RowCount(); row++ {
		r := BillingRecord{
			UserID:             t.Cell(row, idCol),
			DaysSinceLastLogin: DefaultDaysSinceLogin,
		}
		if hasCancel {
			r.CancellationRequested = table.ParseFlag(t.Cell(row, cancelCol), "requested")
		}
		if hasPayment {
			r.PaymentIssue = table.ParseFlag(t.Cell(row, paymentCol), "issue", "problem")
		}
		if hasLogin {
			if last := table.ParseTimestamp(t.Cell(row, loginCol)); last != nil {
				days := int(reference.Sub(*last).Hours() / 24)
				if days < 0 {
					days = 0
				}
				r.DaysSinceLastLogin = days
			}
		}
		if hasCharge {
			r.MonthlyCharge = table.ParseAmount(t.Cell(row, chargeCol), 0)
		}
		if r.DaysSinceLastLogin == DefaultDaysSinceLogin {
			missingLogins++
		}
		records = append(records, r)
	}
	if missingLogins > 0 {
		log.Debug().Int("rows", missingLogins).Msg("Billing rows without a usable last-login date use the inactivity sentinel")
	}
	return records, nil
}
