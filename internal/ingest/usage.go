package ingest

import (
	"fmt"

	"churnwatch/internal/table"

	"github.com/rs/zerolog/log"
)

// NormalizeUsage resolves and coerces the usage log extract. User id and a
// timestamp-like column are both required; the duration column is optional
// and defaults each row to one minute, so a bare event log still counts as
// activity.
func NormalizeUsage(t *table.Table) ([]UsageEvent, error) {
	idCol, ok := table.Resolve(t.Columns, userIDKeywords)
	if !ok {
		return nil, fmt.Errorf("usage: no user id column among %v", t.Columns)
	}
	timeCol, ok := table.Resolve(t.Columns, usageTimeKeywords)
	if !ok {
		return nil, fmt.Errorf("usage: no timestamp column among %v", t.Columns)
	}
	durCol, hasDur := table.Resolve(t.Columns, durationKeywords)

	events := make([]UsageEvent, 0, t.RowCount())
	badTimestamps := 0
	for row := 0; row < t.RowCount(); row++ {
		e := UsageEvent{
			UserID:      t.Cell(row, idCol),
			Timestamp:   table.ParseTimestamp(t.Cell(row, timeCol)),
			DurationMin: 1.0,
		}
		if e.Timestamp == nil {
			badTimestamps++
		}
		if hasDur {
			e.DurationMin = table.ParseAmount(t.Cell(row, durCol), 1.0)
		}
		events = append(events, e)
	}
	if badTimestamps > 0 {
		log.Debug().Int("rows", badTimestamps).Msg("Usage rows with unparseable timestamps excluded from windows")
	}
	return events, nil
}
