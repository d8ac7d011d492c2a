package scoring

import (
	"math"
	"testing"

	"churnwatch/internal/features"
	"churnwatch/internal/ingest"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestActivityDrop(t *testing.T) {
	tests := []struct {
		name         string
		row          features.CustomerFeatures
		expectedDrop float64
		expectedZero bool
	}{
		{
			"FullDrop",
			features.CustomerFeatures{TotalMinutesPrev: 100, SessionCountPrev: 0},
			1.0, true,
		},
		{
			"NoPriorActivity",
			features.CustomerFeatures{TotalMinutes: 50, SessionCount: 2},
			0.0, false,
		},
		{
			"BothIdle",
			features.CustomerFeatures{},
			0.0, true,
		},
		{
			"HalfDrop",
			features.CustomerFeatures{TotalMinutesPrev: 100, TotalMinutes: 50},
			0.5, false,
		},
		{
			"SessionsCountWeighted",
			features.CustomerFeatures{SessionCountPrev: 10, SessionCount: 5},
			// prev = 2.0, curr = 1.0, floor keeps denominator sane
			0.5, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drop, zero := ActivityDrop(tt.row)
			if !almostEqual(drop, tt.expectedDrop) || zero != tt.expectedZero {
				t.Errorf("ActivityDrop() = (%v, %v), want (%v, %v)", drop, zero, tt.expectedDrop, tt.expectedZero)
			}
		})
	}
}

func TestComputeComponents(t *testing.T) {
	row := features.CustomerFeatures{
		UnresolvedCount:       7, // caps at 5
		HighSevCount:          2,
		PaymentIssuesCount:    1,
		CancellationRequested: true,
		AvgDaysSinceLogin:     90,
	}
	c := ComputeComponents(row, 0.25)

	if !almostEqual(c.Activity, 0.25) {
		t.Errorf("activity = %v, want 0.25", c.Activity)
	}
	if !almostEqual(c.Unresolved, 1.0) {
		t.Errorf("unresolved = %v, want 1.0 (capped)", c.Unresolved)
	}
	if c.HighSev != 1 {
		t.Errorf("high_sev = %v, want 1", c.HighSev)
	}
	if !almostEqual(c.PaymentIssues, 1.0/3.0) {
		t.Errorf("payment_issues = %v, want 1/3", c.PaymentIssues)
	}
	if c.Cancellation != 1 {
		t.Errorf("cancellation = %v, want 1", c.Cancellation)
	}
	if !almostEqual(c.InactiveDays, 1.0) {
		t.Errorf("inactive_days = %v, want 1.0 at 90 days", c.InactiveDays)
	}
}

func TestInactiveDaysComponent(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected float64
	}{
		{"FreshLogin", 0, 0},
		{"AtGrace", 7, 0},
		{"Midway", 48, (48.0 - 7) / 83},
		{"AtCeiling", 90, 1},
		{"DefaultedNeverSeen", ingest.DefaultDaysSinceLogin, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ComputeComponents(features.CustomerFeatures{AvgDaysSinceLogin: tt.days}, 0)
			if !almostEqual(c.InactiveDays, tt.expected) {
				t.Errorf("inactive_days(%d) = %v, want %v", tt.days, c.InactiveDays, tt.expected)
			}
		})
	}
}

// A cancellation request alone produces a raw score of 0.90, more than any
// other single maxed-out component can contribute.
func TestCancellationDominance(t *testing.T) {
	w := DefaultWeights()
	c := Components{Cancellation: 1}
	if raw := RawScore(c, w); !almostEqual(raw, 0.90) {
		t.Fatalf("raw = %v, want 0.90", raw)
	}

	others := []Components{
		{Activity: 1},
		{Unresolved: 1},
		{HighSev: 1},
		{PaymentIssues: 1},
		{InactiveDays: 1},
	}
	for _, other := range others {
		if RawScore(other, w) >= 0.90 {
			t.Errorf("component %+v should not reach the cancellation contribution", other)
		}
	}
}

func TestScoreBatchNormalization(t *testing.T) {
	w := DefaultWeights()
	rows := []features.CustomerFeatures{
		{UserID: "low"},                                            // raw 0 (fresh login)
		{UserID: "mid", TotalMinutesPrev: 100},                     // raw 0.40
		{UserID: "high", CancellationRequested: true, AvgDaysSinceLogin: ingest.DefaultDaysSinceLogin}, // raw 0.95
	}

	scored := ScoreBatch(rows, w)

	if !almostEqual(scored[0].RiskScore, 0) {
		t.Errorf("low = %v, want 0", scored[0].RiskScore)
	}
	if !almostEqual(scored[2].RiskScore, 1) {
		t.Errorf("high = %v, want 1", scored[2].RiskScore)
	}
	expectedMid := (0.40 - 0.0) / 0.95
	if !almostEqual(scored[1].RiskScore, expectedMid) {
		t.Errorf("mid = %v, want %v", scored[1].RiskScore, expectedMid)
	}
	for _, s := range scored {
		if s.RiskScore < 0 || s.RiskScore > 1 {
			t.Errorf("%s: score %v outside [0,1]", s.UserID, s.RiskScore)
		}
	}
}

func TestScoreBatchDegenerate(t *testing.T) {
	w := DefaultWeights()

	if got := ScoreBatch(nil, w); len(got) != 0 {
		t.Fatalf("empty batch should produce no rows, got %d", len(got))
	}

	// Identical raw scores across the batch: min == max, everyone gets 0.
	rows := []features.CustomerFeatures{
		{UserID: "a", TotalMinutesPrev: 100},
		{UserID: "b", TotalMinutesPrev: 250},
	}
	for _, s := range ScoreBatch(rows, w) {
		if s.RiskScore != 0 {
			t.Errorf("%s: degenerate batch score = %v, want 0", s.UserID, s.RiskScore)
		}
		if s.RiskTier != TierLow {
			t.Errorf("%s: tier = %s, want %s", s.UserID, s.RiskTier, TierLow)
		}
	}
}

// A customer present only in the profiles table: every component is zero
// except inactive days, which saturates at the 9999 default. Its 0.05
// contribution is the maximum, so it names the primary reason.
func TestProfileOnlyCustomerReason(t *testing.T) {
	w := DefaultWeights()
	rows := []features.CustomerFeatures{
		{UserID: "ghost", AvgDaysSinceLogin: ingest.DefaultDaysSinceLogin},
	}
	scored := ScoreBatch(rows, w)

	if !almostEqual(scored[0].ScoreRaw, 0.05) {
		t.Errorf("raw = %v, want 0.05", scored[0].ScoreRaw)
	}
	if scored[0].PrimaryReason != "Long time since last login" {
		t.Errorf("reason = %q, want long-time-since-login", scored[0].PrimaryReason)
	}
}

func TestPrimaryReasonTieBreak(t *testing.T) {
	w := Weights{Activity: 0.5, Unresolved: 0.5}
	c := Components{Activity: 1, Unresolved: 1}
	if got := PrimaryReason(c, w); got != "Activity drop (7d vs prev)" {
		t.Errorf("tie should break to activity, got %q", got)
	}

	// All-zero components also fall back to the first label.
	if got := PrimaryReason(Components{}, DefaultWeights()); got != "Activity drop (7d vs prev)" {
		t.Errorf("all-zero contributions = %q, want activity label", got)
	}
}

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{1.0, TierCritical},
		{0.95, TierCritical},
		{0.9499, TierHigh},
		{0.75, TierHigh},
		{0.7499, TierMedium},
		{0.40, TierMedium},
		{0.3999, TierLow},
		{0.0, TierLow},
	}

	for _, tt := range tests {
		if got := TierForScore(tt.score); got != tt.expected {
			t.Errorf("TierForScore(%v) = %s, want %s", tt.score, got, tt.expected)
		}
	}
}

// Higher score never yields a lower tier.
func TestTierMonotonic(t *testing.T) {
	rank := map[string]int{TierLow: 0, TierMedium: 1, TierHigh: 2, TierCritical: 3}
	prev := -1
	for s := 0.0; s <= 1.0; s += 0.01 {
		r := rank[TierForScore(s)]
		if r < prev {
			t.Fatalf("tier rank decreased at score %v", s)
		}
		prev = r
	}
}
