package scoring

// Risk tier labels, ordinal from highest to lowest.
const (
	TierCritical = "Critical"
	TierHigh     = "High"
	TierMedium   = "Medium"
	TierLow      = "Low"
)

// TierForScore maps a normalized risk score to its tier. Band lower bounds
// are inclusive.
func TierForScore(score float64) string {
	switch {
	case score >= 0.95:
		return TierCritical
	case score >= 0.75:
		return TierHigh
	case score >= 0.40:
		return TierMedium
	default:
		return TierLow
	}
}
