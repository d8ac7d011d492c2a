package table

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayouts covers the formats seen across the four extracts.
// Parsing is best-effort: a cell that matches no layout coerces to nil.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"2006/01/02 15:04:05",
}

// ParseTimestamp parses a free-form timestamp cell. It returns nil when the
// cell is empty or matches no known layout; callers exclude nil timestamps
// from window membership rather than defaulting them.
func ParseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// ParseFlag coerces a free-text boolean cell. Beyond the usual truthy tokens,
// extra context words ("requested" for cancellations, "issue"/"problem" for
// payment flags) also read as true. Anything else is false.
func ParseFlag(value string, contextWords ...string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "true", "1", "yes", "y":
		return true
	}
	for _, w := range contextWords {
		if v == w {
			return true
		}
	}
	return false
}

// ParseAmount coerces a monetary or numeric cell, stripping currency symbols
// and separators before parsing. Empty or unparseable cells take fallback.
func ParseAmount(value string, fallback float64) float64 {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
