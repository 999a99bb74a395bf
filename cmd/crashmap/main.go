package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/crash-map/internal/config"
	"github.com/couchcryptid/crash-map/internal/dataset"
	"github.com/couchcryptid/crash-map/internal/domain"
	"github.com/couchcryptid/crash-map/internal/observability"
	"github.com/couchcryptid/crash-map/internal/viewer"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	datasetPath string

	// newMetrics registers with the default Prometheus registry; tests swap it.
	newMetrics = observability.NewMetrics
)

var rootCmd = &cobra.Command{
	Use:   "crashmap",
	Short: "Explore car crash counts by county",
	Long:  "Ranks counties by crash counts over selected years and renders them as a choropleth map or a bar chart, on the command line or over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cmd.Flags().Changed("dataset") {
			c.DatasetPath = datasetPath
		}
		cfg = c
		logger = observability.NewLogger(cfg)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "GeoJSON dataset path (default: DATASET_PATH or the bundled sample)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildViewer loads the configured dataset and prepares the views over it.
func buildViewer() (*viewer.Viewer, error) {
	features, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	return viewer.Build(features, cfg.ProjectionOptions(), viewer.Options{
		MapSize:   cfg.MapSize,
		CacheSize: cfg.RenderCacheSize,
	}, logger, newMetrics())
}

// addYearsFlag registers --years on cmd. The default selects every
// catalogue year; an explicit empty value selects none.
func addYearsFlag(cmd *cobra.Command) {
	cmd.Flags().String("years", domain.AllYears().String(), "comma-separated years to include")
}

func yearsFlag(cmd *cobra.Command) (domain.YearSet, error) {
	s, err := cmd.Flags().GetString("years")
	if err != nil {
		return nil, err
	}
	return viewer.ParseYears(s)
}
