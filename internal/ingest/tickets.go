package ingest

import (
	"fmt"

	"churnwatch/internal/table"

	"github.com/rs/zerolog/log"
)

// NormalizeTickets resolves and coerces the support ticket extract. User id
// and an opened-date column are required; status and severity default to
// "Unknown" and "Low" when their columns are absent.
func NormalizeTickets(t *table.Table) ([]Ticket, error) {
	idCol, ok := table.Resolve(t.Columns, userIDKeywords)
	if !ok {
		return nil, fmt.Errorf("tickets: no user id column among %v", t.Columns)
	}
	openedCol, ok := table.Resolve(t.Columns, ticketOpenedKeywords)
	if !ok {
		return nil, fmt.Errorf("tickets: no date-opened column among %v", t.Columns)
	}
	statusCol, hasStatus := table.Resolve(t.Columns, ticketStatusKeywords)
	severityCol, hasSeverity := table.Resolve(t.Columns, ticketSeverityKeywords)

	tickets := make([]Ticket, 0, t.RowCount())
	badOpened := 0
	for row := 0; row < t.RowCount(); row++ {
		tk := Ticket{
			UserID:   t.Cell(row, idCol),
			Opened:   table.ParseTimestamp(t.Cell(row, openedCol)),
			Status:   "Unknown",
			Severity: "Low",
		}
		if hasStatus {
			if s := t.Cell(row, statusCol); s != "" {
				tk.Status = s
			}
		}
		if hasSeverity {
			if s := t.Cell(row, severityCol); s != "" {
				tk.Severity = s
			}
		}
		if tk.Opened == nil {
			badOpened++
		}
		tickets = append(tickets, tk)
	}
	if badOpened > 0 {
		log.Debug().Int("rows", badOpened).Msg("Ticket rows with unparseable opened dates excluded from windows")
	}
	return tickets, nil
}
