package scoring

// Display labels for the primary reason, keyed by component in the fixed
// tie-break order: on equal contributions the earlier component wins.
var reasonOrder = []struct {
	label        string
	contribution func(c Components, w Weights) float64
}{
	{"Activity drop (7d vs prev)", func(c Components, w Weights) float64 { return c.Activity * w.Activity }},
	{"Unresolved recent support tickets", func(c Components, w Weights) float64 { return c.Unresolved * w.Unresolved }},
	{"High-severity open ticket", func(c Components, w Weights) float64 { return c.HighSev * w.HighSev }},
	{"Recent payment issues", func(c Components, w Weights) float64 { return c.PaymentIssues * w.PaymentIssues }},
	{"Cancellation requested", func(c Components, w Weights) float64 { return c.Cancellation * w.Cancellation }},
	{"Long time since last login", func(c Components, w Weights) float64 { return c.InactiveDays * w.InactiveDays }},
}

// PrimaryReason returns the label of the component with the largest weighted
// contribution. Strictly-greater comparison implements the tie-break: the
// first component in enumeration order keeps the lead.
func PrimaryReason(c Components, w Weights) string {
	best := reasonOrder[0].label
	bestValue := reasonOrder[0].contribution(c, w)
	for _, r := range reasonOrder[1:] {
		if v := r.contribution(c, w); v > bestValue {
			best = r.label
			bestValue = v
		}
	}
	return best
}
