package scoring

import (
	"math"

	"churnwatch/internal/features"
)

// Weights configures the contribution of each risk component. They are not
// required to sum to 1: cancellation dominates so that a cancellation
// request alone outweighs any other single signal.
type Weights struct {
	Activity      float64 `yaml:"activity"`
	Unresolved    float64 `yaml:"unresolved"`
	HighSev       float64 `yaml:"high_sev"`
	PaymentIssues float64 `yaml:"payment_issues"`
	Cancellation  float64 `yaml:"cancellation"`
	InactiveDays  float64 `yaml:"inactive_days"`
}

// DefaultWeights returns the calibrated production weights.
func DefaultWeights() Weights {
	return Weights{
		Activity:      0.40,
		Unresolved:    0.20,
		HighSev:       0.15,
		PaymentIssues: 0.10,
		Cancellation:  0.90,
		InactiveDays:  0.05,
	}
}

// Components are the normalized [0,1] sub-signals of risk, one per source.
type Components struct {
	Activity      float64
	Unresolved    float64
	HighSev       float64
	PaymentIssues float64
	Cancellation  float64
	InactiveDays  float64
}

// ScoredCustomer is a feature row enriched with the scoring outputs.
type ScoredCustomer struct {
	features.CustomerFeatures

	ActivityRelativeDrop float64
	ZeroCurrentActivity  bool
	Components           Components
	ScoreRaw             float64
	RiskScore            float64
	PrimaryReason        string
	RiskTier             string
}

// ActivityDrop computes the relative decline between the previous and
// current window. Session counts enter at a 0.2 weight so a run of short
// sessions still registers as activity. The denominator floor of 1.0 keeps
// near-zero previous activity from blowing the ratio up, and clamping at
// zero means a quiet customer who became active cannot score negative.
func ActivityDrop(row features.CustomerFeatures) (drop float64, zeroCurrent bool) {
	prev := row.TotalMinutesPrev + 0.2*float64(row.SessionCountPrev)
	curr := row.TotalMinutes + 0.2*float64(row.SessionCount)
	drop = clamp((prev-curr)/math.Max(prev, 1.0), 0, 1)
	return drop, curr <= 0
}

// ComputeComponents derives the six component scores for one customer.
func ComputeComponents(row features.CustomerFeatures, drop float64) Components {
	c := Components{
		Activity:      clamp(drop, 0, 1),
		Unresolved:    math.Min(float64(row.UnresolvedCount), 5) / 5,
		PaymentIssues: math.Min(float64(row.PaymentIssuesCount), 3) / 3,
		InactiveDays:  clamp((math.Min(float64(row.AvgDaysSinceLogin), 365)-7)/(90-7), 0, 1),
	}
	if row.HighSevCount > 0 {
		c.HighSev = 1
	}
	if row.CancellationRequested {
		c.Cancellation = 1
	}
	return c
}

// RawScore is the weighted sum of component scores before batch-relative
// normalization.
func RawScore(c Components, w Weights) float64 {
	return c.Activity*w.Activity +
		c.Unresolved*w.Unresolved +
		c.HighSev*w.HighSev +
		c.PaymentIssues*w.PaymentIssues +
		c.Cancellation*w.Cancellation +
		c.InactiveDays*w.InactiveDays
}

// ScoreBatch scores every feature row: components, raw score, batch min-max
// normalization, primary reason, and tier. The normalized score is relative
// to this batch; it must be recomputed whenever the customer set changes.
// A degenerate batch (empty, or every raw score identical) normalizes to 0.
func ScoreBatch(rows []features.CustomerFeatures, w Weights) []ScoredCustomer {
	scored := make([]ScoredCustomer, len(rows))

	minRaw := math.Inf(1)
	maxRaw := math.Inf(-1)
	for i, row := range rows {
		drop, zero := ActivityDrop(row)
		comps := ComputeComponents(row, drop)
		raw := RawScore(comps, w)

		scored[i] = ScoredCustomer{
			CustomerFeatures:     row,
			ActivityRelativeDrop: drop,
			ZeroCurrentActivity:  zero,
			Components:           comps,
			ScoreRaw:             raw,
			PrimaryReason:        PrimaryReason(comps, w),
		}
		minRaw = math.Min(minRaw, raw)
		maxRaw = math.Max(maxRaw, raw)
	}

	spread := maxRaw - minRaw
	for i := range scored {
		if len(scored) == 0 || spread <= 0 {
			scored[i].RiskScore = 0
		} else {
			scored[i].RiskScore = clamp((scored[i].ScoreRaw-minRaw)/spread, 0, 1)
		}
		scored[i].RiskTier = TierForScore(scored[i].RiskScore)
	}
	return scored
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
