package engine

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"churnwatch/internal/table"
)

type GeneratorConfig struct {
	Scenario  string // "healthy", "churny", "mixed"
	Count     int
	Seed      int64
	ReportEnd time.Time // end of the current analysis window
}

// Extracts bundles the four generated tables. Column names are deliberately
// messy (mixed casing, vendor spellings) to exercise column discovery the
// way real exports do.
type Extracts struct {
	Profiles *table.Table
	Usage    *table.Table
	Tickets  *table.Table
	Billing  *table.Table
}

var plans = []string{"free", "basic", "pro", "enterprise"}

// Generate builds a synthetic four-table customer population. The churn
// probability per customer depends on the scenario; churning customers show
// dropped current-window activity, stale logins, and occasionally a
// cancellation request or payment trouble.
func Generate(cfg GeneratorConfig) Extracts {
	if cfg.ReportEnd.IsZero() {
		cfg.ReportEnd = time.Now()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	churnRate := 0.25
	switch cfg.Scenario {
	case "healthy":
		churnRate = 0.05
	case "churny":
		churnRate = 0.60
	}

	ext := Extracts{
		Profiles: table.New("CustomerID", "Account_Type", "Monthly_Spend", "is_paying"),
		Usage:    table.New("UserID", "Event_Time", "Session_Duration_Min"),
		Tickets:  table.New("userid", "Date_Opened", "Ticket_Status", "Priority_Level"),
		Billing:  table.New("USER_ID", "cancel_request", "payment_flag", "Last_Login_Date", "amount_usd"),
	}

	currStart := cfg.ReportEnd.AddDate(0, 0, -8)
	prevStart := currStart.AddDate(0, 0, -7)

	for i := 0; i < cfg.Count; i++ {
		id := fmt.Sprintf("U%04d", i+1)
		churning := rng.Float64() < churnRate
		plan := plans[rng.Intn(len(plans))]
		charge := 10 + rng.Float64()*90
		if plan == "free" {
			charge = 0
		}

		ext.Profiles.AppendRow([]string{
			id, plan, fmt.Sprintf("$%.2f", charge), "yes",
		})

		// Previous-window activity for everyone; churners go quiet in the
		// current window.
		prevSessions := 3 + rng.Intn(8)
		for s := 0; s < prevSessions; s++ {
			at := prevStart.Add(time.Duration(rng.Intn(7*24)) * time.Hour)
			ext.Usage.AppendRow([]string{
				id, at.Format("2006-01-02 15:04:05"), fmt.Sprintf("%.1f", 5+rng.Float64()*40),
			})
		}
		currSessions := 3 + rng.Intn(8)
		if churning {
			currSessions = rng.Intn(2)
		}
		for s := 0; s < currSessions; s++ {
			at := currStart.Add(time.Duration(rng.Intn(8*24)) * time.Hour)
			ext.Usage.AppendRow([]string{
				id, at.Format("2006-01-02 15:04:05"), fmt.Sprintf("%.1f", 5+rng.Float64()*40),
			})
		}

		// Churners file more, and angrier, tickets.
		ticketChance := 0.15
		if churning {
			ticketChance = 0.6
		}
		for rng.Float64() < ticketChance {
			ticketChance /= 2
			at := currStart.Add(time.Duration(rng.Intn(8*24)) * time.Hour)
			status := "Resolved"
			severity := "Low"
			if churning {
				status = "Open"
				if rng.Float64() < 0.5 {
					severity = "High"
				}
			}
			ext.Tickets.AppendRow([]string{
				id, at.Format("2006-01-02 15:04:05"), status, severity,
			})
		}

		lastLogin := cfg.ReportEnd.AddDate(0, 0, -rng.Intn(5))
		cancel := "no"
		payment := "ok"
		if churning {
			lastLogin = cfg.ReportEnd.AddDate(0, 0, -(10 + rng.Intn(120)))
			if rng.Float64() < 0.3 {
				cancel = "requested"
			}
			if rng.Float64() < 0.4 {
				payment = "problem"
			}
		}
		ext.Billing.AppendRow([]string{
			id, cancel, payment, lastLogin.Format("2006-01-02"), fmt.Sprintf("%.2f", charge),
		})
	}

	return ext
}

// Save writes the four extracts under their conventional filenames.
func Save(outDir string, ext Extracts) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	files := map[string]*table.Table{
		"USER_PROFILES.csv":   ext.Profiles,
		"USAGE_LOGS.csv":      ext.Usage,
		"SUPPORT_TICKETS.csv": ext.Tickets,
		"BILLING_STATUS.csv":  ext.Billing,
	}
	for name, t := range files {
		if err := table.WriteCSV(t, filepath.Join(outDir, name)); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
