package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"churnwatch/internal/scoring"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

// StoreConfig configures the optional Postgres sink for scored runs.
type StoreConfig struct {
	URL    string
	Schema string
	Tag    string
}

var validSchema = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Store persists one scored run: a run header row plus one row per customer.
// The schema is created on first use. Returns the run id.
func Store(ctx context.Context, r Report, cfg StoreConfig) (string, error) {
	schema := strings.TrimSpace(cfg.Schema)
	if schema == "" {
		return "", errors.New("db schema is required")
	}
	if !validSchema.MatchString(schema) {
		return "", fmt.Errorf("invalid schema name: %s", schema)
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return "", err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return "", err
	}
	if err := ensureSchema(ctx, db, schema); err != nil {
		return "", err
	}

	runID := uuid.New()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	tiers := map[string]int{}
	for _, row := range r.Rows {
		tiers[row.RiskTier]++
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s.risk_runs (
			id, total_customers, critical_count, high_count, medium_count, low_count, run_tag
		) VALUES ($1,$2,$3,$4,$5,$6,$7)`, schema),
		runID,
		len(r.Rows),
		tiers[scoring.TierCritical],
		tiers[scoring.TierHigh],
		tiers[scoring.TierMedium],
		tiers[scoring.TierLow],
		nullString(cfg.Tag),
	)
	if err != nil {
		return "", err
	}

	insertRowSQL := fmt.Sprintf(`
		INSERT INTO %s.risk_rows (
			id, run_id, user_id, risk_score, risk_tier, primary_reason,
			monthly_charge, activity_relative_drop, unresolved_count,
			high_sev_count, payment_issues_count, cancellation_requested,
			avg_days_since_login
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`, schema)

	for _, row := range r.Rows {
		_, err = tx.ExecContext(ctx, insertRowSQL,
			uuid.New(),
			runID,
			row.UserID,
			round4(row.RiskScore),
			row.RiskTier,
			row.PrimaryReason,
			row.MonthlyCharge,
			row.ActivityRelativeDrop,
			row.UnresolvedCount,
			row.HighSevCount,
			row.PaymentIssuesCount,
			row.CancellationRequested,
			row.AvgDaysSinceLogin,
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	log.Info().Str("run_id", runID.String()).Int("rows", len(r.Rows)).Msg("Stored run in Postgres")
	return runID.String(), nil
}

func ensureSchema(ctx context.Context, db *sql.DB, schema string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema)); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.risk_runs (
			id uuid PRIMARY KEY,
			total_customers integer NOT NULL,
			critical_count integer NOT NULL,
			high_count integer NOT NULL,
			medium_count integer NOT NULL,
			low_count integer NOT NULL,
			run_tag text,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.risk_rows (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.risk_runs(id) ON DELETE CASCADE,
			user_id text NOT NULL,
			risk_score numeric(6,4) NOT NULL,
			risk_tier text NOT NULL,
			primary_reason text NOT NULL,
			monthly_charge numeric(12,2) NOT NULL,
			activity_relative_drop numeric(6,4) NOT NULL,
			unresolved_count integer NOT NULL,
			high_sev_count integer NOT NULL,
			payment_issues_count integer NOT NULL,
			cancellation_requested boolean NOT NULL,
			avg_days_since_login integer NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_risk_rows_run_idx ON %s.risk_rows (run_id)`, schema, schema))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_risk_rows_tier_idx ON %s.risk_rows (risk_tier)`, schema, schema))
	return err
}

func nullString(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
