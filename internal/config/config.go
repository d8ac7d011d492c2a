package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"churnwatch/internal/features"
	"churnwatch/internal/scoring"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// windowLayouts accepted for window boundaries in YAML and env overrides.
var windowLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Inputs names the four tabular extracts.
type Inputs struct {
	Profiles string `yaml:"profiles"`
	Usage    string `yaml:"usage"`
	Tickets  string `yaml:"tickets"`
	Billing  string `yaml:"billing"`
}

// Outputs names the report artifacts.
type Outputs struct {
	Report string `yaml:"report"`
	Top    string `yaml:"top"`
	TopN   int    `yaml:"top_n"`
}

// Windows holds the raw boundary strings for the two analysis windows.
type Windows struct {
	CurrentStart string `yaml:"current_start"`
	CurrentEnd   string `yaml:"current_end"`
	PrevStart    string `yaml:"prev_start"`
	PrevEnd      string `yaml:"prev_end"`
}

// Database configures the optional Postgres report sink.
type Database struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Schema  string `yaml:"schema"`
	Tag     string `yaml:"tag"`
}

// Config is the complete, immutable per-run configuration. It is passed into
// the pipeline explicitly so concurrent runs with different windows or
// weights never share state.
type Config struct {
	Inputs   Inputs          `yaml:"inputs"`
	Outputs  Outputs         `yaml:"outputs"`
	Windows  Windows         `yaml:"windows"`
	Weights  scoring.Weights `yaml:"weights"`
	Database Database        `yaml:"database"`

	// Parsed windows, populated by Validate.
	Current  features.Window `yaml:"-"`
	Previous features.Window `yaml:"-"`
}

// Default returns the stock configuration: the fixed report windows the
// batch was calibrated against, default weights, and conventional filenames.
func Default() *Config {
	return &Config{
		Inputs: Inputs{
			Profiles: "USER_PROFILES.csv",
			Usage:    "USAGE_LOGS.csv",
			Tickets:  "SUPPORT_TICKETS.csv",
			Billing:  "BILLING_STATUS.csv",
		},
		Outputs: Outputs{
			Report: "Final_Risk_Report.csv",
			Top:    "Top100_HighRisk.csv",
			TopN:   100,
		},
		Windows: Windows{
			CurrentStart: "2025-11-23 00:00:00",
			CurrentEnd:   "2025-11-30 23:59:59",
			PrevStart:    "2025-11-16 00:00:00",
			PrevEnd:      "2025-11-22 23:59:59",
		},
		Weights: scoring.DefaultWeights(),
		Database: Database{
			Schema: "churnwatch",
		},
	}
}

// Load builds the run configuration: defaults, then the YAML run file (if
// any), then environment overrides, then validation. A .env in the working
// directory is honored first so the DSN can stay out of shell history.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded .env from working directory")
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		log.Debug().Str("path", path).Msg("Loaded run configuration")
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Inputs.Profiles, "CHURNWATCH_PROFILES")
	setString(&cfg.Inputs.Usage, "CHURNWATCH_USAGE")
	setString(&cfg.Inputs.Tickets, "CHURNWATCH_TICKETS")
	setString(&cfg.Inputs.Billing, "CHURNWATCH_BILLING")
	setString(&cfg.Outputs.Report, "CHURNWATCH_REPORT")
	setString(&cfg.Outputs.Top, "CHURNWATCH_TOP")
	setString(&cfg.Windows.CurrentStart, "CHURNWATCH_CURRENT_WINDOW_START")
	setString(&cfg.Windows.CurrentEnd, "CHURNWATCH_CURRENT_WINDOW_END")
	setString(&cfg.Windows.PrevStart, "CHURNWATCH_PREV_WINDOW_START")
	setString(&cfg.Windows.PrevEnd, "CHURNWATCH_PREV_WINDOW_END")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Database.URL, "CHURNWATCH_DB_URL")
	setString(&cfg.Database.Schema, "CHURNWATCH_DB_SCHEMA")

	if v, ok := os.LookupEnv("CHURNWATCH_TOP_N"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Outputs.TopN = n
		}
	}
}

func setString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}

// Validate parses the window boundaries and checks the pair invariants:
// well-formed, disjoint, current after previous. Called by Load; exposed for
// configs assembled in code.
func (c *Config) Validate() error {
	var err error
	if c.Current.Start, err = parseBoundary(c.Windows.CurrentStart); err != nil {
		return fmt.Errorf("current_start: %w", err)
	}
	if c.Current.End, err = parseBoundary(c.Windows.CurrentEnd); err != nil {
		return fmt.Errorf("current_end: %w", err)
	}
	if c.Previous.Start, err = parseBoundary(c.Windows.PrevStart); err != nil {
		return fmt.Errorf("prev_start: %w", err)
	}
	if c.Previous.End, err = parseBoundary(c.Windows.PrevEnd); err != nil {
		return fmt.Errorf("prev_end: %w", err)
	}
	if err := features.ValidateWindowPair(c.Current, c.Previous); err != nil {
		return err
	}
	if c.Outputs.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.Outputs.TopN)
	}
	return nil
}

func parseBoundary(value string) (time.Time, error) {
	for _, layout := range windowLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
