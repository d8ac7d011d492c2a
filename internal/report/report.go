package report

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"churnwatch/internal/scoring"
	"churnwatch/internal/table"
)

// outputColumns is the contract column order of the report artifacts.
var outputColumns = []string{
	"User_ID",
	"Risk_Score",
	"Risk_Tier",
	"Primary_Reason",
	"Monthly_Charge",
	"activity_relative_drop",
	"unresolved_count",
	"high_sev_count",
	"payment_issues_count",
	"cancellation_requested_any",
	"avg_days_since_login",
}

// Report is the assembled output: the full ranked customer set and the
// head slice extracted from it. Both share one sort order.
type Report struct {
	Rows []scoring.ScoredCustomer
	Top  []scoring.ScoredCustomer
}

// Assemble sorts the scored customers by (risk score desc, monthly charge
// desc) — ties on score break toward higher-paying customers — and cuts the
// top-N head slice. Sorting is stable so equal rows keep their join order
// and re-runs stay byte-identical.
func Assemble(scored []scoring.ScoredCustomer, topN int) Report {
	rows := append([]scoring.ScoredCustomer{}, scored...)
	slices.SortStableFunc(rows, func(a, b scoring.ScoredCustomer) int {
		if a.RiskScore != b.RiskScore {
			if a.RiskScore > b.RiskScore {
				return -1
			}
			return 1
		}
		if a.MonthlyCharge != b.MonthlyCharge {
			if a.MonthlyCharge > b.MonthlyCharge {
				return -1
			}
			return 1
		}
		return 0
	})

	top := rows
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}
	return Report{Rows: rows, Top: top}
}

// ToTable renders rows into the columnar output shape, risk score rounded
// to four decimals.
func ToTable(rows []scoring.ScoredCustomer) *table.Table {
	t := table.New(outputColumns...)
	for _, row := range rows {
		record := []string{
			row.UserID,
			strconv.FormatFloat(round4(row.RiskScore), 'f', 4, 64),
			row.RiskTier,
			row.PrimaryReason,
			strconv.FormatFloat(row.MonthlyCharge, 'f', -1, 64),
			strconv.FormatFloat(row.ActivityRelativeDrop, 'f', -1, 64),
			strconv.Itoa(row.UnresolvedCount),
			strconv.Itoa(row.HighSevCount),
			strconv.Itoa(row.PaymentIssuesCount),
			strconv.FormatBool(row.CancellationRequested),
			strconv.Itoa(row.AvgDaysSinceLogin),
		}
		if err := t.AppendRow(record); err != nil {
			// outputColumns and the record literal are the same length.
			panic(err)
		}
	}
	return t
}

// WriteFiles writes the full report and the head slice as two CSV artifacts.
func (r Report) WriteFiles(reportPath, topPath string) error {
	if err := table.WriteCSV(ToTable(r.Rows), reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := table.WriteCSV(ToTable(r.Top), topPath); err != nil {
		return fmt.Errorf("write top slice: %w", err)
	}
	return nil
}

// PrintSummary writes a console digest: tier counts and the riskiest 20
// customers.
func (r Report) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "Churn Risk Report")
	fmt.Fprintln(w, strings.Repeat("=", 38))
	fmt.Fprintf(w, "Customers scored: %d\n", len(r.Rows))

	tiers := map[string]int{}
	for _, row := range r.Rows {
		tiers[row.RiskTier]++
	}
	fmt.Fprintf(w, "Critical: %d | High: %d | Medium: %d | Low: %d\n",
		tiers[scoring.TierCritical], tiers[scoring.TierHigh], tiers[scoring.TierMedium], tiers[scoring.TierLow])

	fmt.Fprintln(w, "\nTop 20 high-risk customers")
	fmt.Fprintln(w, strings.Repeat("-", 38))
	preview := r.Rows
	if len(preview) > 20 {
		preview = preview[:20]
	}
	if len(preview) == 0 {
		fmt.Fprintln(w, "No customers found.")
		return
	}
	for _, row := range preview {
		fmt.Fprintf(w, "%s | %.4f | %s | %s\n", row.UserID, row.RiskScore, row.RiskTier, row.PrimaryReason)
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
