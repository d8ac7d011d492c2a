package report

import (
	"bytes"
	"strings"
	"testing"

	"churnwatch/internal/features"
	"churnwatch/internal/scoring"
)

func customer(id string, score, charge float64) scoring.ScoredCustomer {
	return scoring.ScoredCustomer{
		CustomerFeatures: features.CustomerFeatures{UserID: id, MonthlyCharge: charge},
		RiskScore:        score,
		RiskTier:         scoring.TierForScore(score),
		PrimaryReason:    "Activity drop (7d vs prev)",
	}
}

func TestAssembleSortOrder(t *testing.T) {
	scored := []scoring.ScoredCustomer{
		customer("cheap", 0.5, 10),
		customer("top", 0.9, 10),
		customer("rich", 0.5, 99),
	}

	r := Assemble(scored, 2)

	got := []string{r.Rows[0].UserID, r.Rows[1].UserID, r.Rows[2].UserID}
	want := []string{"top", "rich", "cheap"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sort order = %v, want %v (score desc, charge breaks ties)", got, want)
		}
	}
	if len(r.Top) != 2 || r.Top[0].UserID != "top" {
		t.Errorf("top slice = %d rows starting with %s, want 2 starting with top", len(r.Top), r.Top[0].UserID)
	}
}

func TestAssembleDoesNotMutateInput(t *testing.T) {
	scored := []scoring.ScoredCustomer{
		customer("a", 0.1, 0),
		customer("b", 0.9, 0),
	}
	Assemble(scored, 10)
	if scored[0].UserID != "a" {
		t.Error("input slice order changed")
	}
}

func TestToTable(t *testing.T) {
	row := customer("U1", 0.41176, 49.99)
	row.UnresolvedCount = 2
	row.HighSevCount = 1
	row.PaymentIssuesCount = 3
	row.CancellationRequested = true
	row.AvgDaysSinceLogin = 12
	row.ActivityRelativeDrop = 1

	tbl := ToTable([]scoring.ScoredCustomer{row})

	if tbl.Columns[0] != "User_ID" || tbl.Columns[len(tbl.Columns)-1] != "avg_days_since_login" {
		t.Errorf("column order wrong: %v", tbl.Columns)
	}
	if got := tbl.Cell(0, "Risk_Score"); got != "0.4118" {
		t.Errorf("risk score = %q, want 4-decimal rounding to 0.4118", got)
	}
	if got := tbl.Cell(0, "Monthly_Charge"); got != "49.99" {
		t.Errorf("monthly charge = %q", got)
	}
	if got := tbl.Cell(0, "cancellation_requested_any"); got != "true" {
		t.Errorf("cancellation = %q", got)
	}
	if got := tbl.Cell(0, "activity_relative_drop"); got != "1" {
		t.Errorf("drop = %q, want 1", got)
	}
	if got := tbl.Cell(0, "avg_days_since_login"); got != "12" {
		t.Errorf("days = %q", got)
	}
}

func TestPrintSummary(t *testing.T) {
	r := Assemble([]scoring.ScoredCustomer{
		customer("U1", 1.0, 10),
		customer("U2", 0.2, 10),
	}, 100)

	var buf bytes.Buffer
	r.PrintSummary(&buf)
	out := buf.String()

	if !strings.Contains(out, "Customers scored: 2") {
		t.Errorf("missing count in summary:\n%s", out)
	}
	if !strings.Contains(out, "Critical: 1") || !strings.Contains(out, "Low: 1") {
		t.Errorf("missing tier counts:\n%s", out)
	}
	if !strings.Contains(out, "U1 | 1.0000 | Critical") {
		t.Errorf("missing top row:\n%s", out)
	}
}
