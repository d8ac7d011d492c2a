package commands

import (
	"churnwatch/internal/config"
	"churnwatch/internal/logging"
	"churnwatch/internal/pipeline"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose    bool
	configPath string
	storeRun   bool
	runTag     string
)

var rootCmd = &cobra.Command{
	Use:   "churnwatch",
	Short: "Churnwatch scores customer churn risk from four tabular extracts",
	Long: `A batch pipeline that reconciles customer profiles, usage logs, support
tickets, and billing status into one per-customer view, computes an explainable
churn-risk score, and emits a ranked report plus a top-N extract.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Churnwatch starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if storeRun {
			cfg.Database.Enabled = true
		}
		if runTag != "" {
			cfg.Database.Tag = runTag
		}

		_, err = pipeline.Run(cmd.Context(), cfg)
		return err
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML run configuration")
	rootCmd.Flags().BoolVar(&storeRun, "db", false, "persist the scored run to Postgres")
	rootCmd.Flags().StringVar(&runTag, "db-tag", "", "optional label for the stored run")
}
