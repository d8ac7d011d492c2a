package features

import (
	"fmt"
	"time"
)

// Window is a closed time interval [Start, End] used to filter event
// timestamps. Membership is inclusive on both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window. Nil timestamps are
// never members.
func (w Window) Contains(t *time.Time) bool {
	if t == nil {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// Validate checks internal ordering.
func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("window boundaries must be set")
	}
	if w.End.Before(w.Start) {
		return fmt.Errorf("window end %s precedes start %s", w.End.Format(time.RFC3339), w.Start.Format(time.RFC3339))
	}
	return nil
}

// ValidateWindowPair checks that the two analysis windows are individually
// well-formed, disjoint, and that current sits after previous. The scorer
// compares the two, so an overlap would double-count activity.
func ValidateWindowPair(current, previous Window) error {
	if err := current.Validate(); err != nil {
		return fmt.Errorf("current %w", err)
	}
	if err := previous.Validate(); err != nil {
		return fmt.Errorf("previous %w", err)
	}
	if !current.Start.After(previous.End) {
		return fmt.Errorf("current window must start after the previous window ends (current start %s, previous end %s)",
			current.Start.Format(time.RFC3339), previous.End.Format(time.RFC3339))
	}
	return nil
}
