package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"energy_dashboard/internal/analysis"
	"energy_dashboard/internal/config"
	"energy_dashboard/internal/logger"
	"energy_dashboard/internal/predictor"
)

var (
	cfgFile  string
	dataFile string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "energy-dashboard",
	Short: "Analyze household electricity consumption",
	Long: `energy-dashboard loads minute-level household power readings, resamples them
to hourly records, and serves summary statistics, filtered chart series and a
linear energy model over HTTP and WebSocket.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "semicolon-separated power consumption file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, err
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// setup loads config and builds the logger. The logger also becomes the zap
// global so config warnings after startup are not lost.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	zap.ReplaceGlobals(log)
	return cfg, log, nil
}

func analysisOptions(cfg *config.Config) analysis.Options {
	return analysis.Options{
		DataFile: cfg.DataFile,
		Train: predictor.TrainConfig{
			TestFraction: cfg.Model.TestFraction,
			Seed:         cfg.Model.Seed,
		},
		Unit:      cfg.Model.Unit,
		SampleCap: cfg.Dashboard.SampleCap,
	}
}

// buildSnapshot runs the full startup pipeline.
func buildSnapshot(cfg *config.Config, log *zap.Logger) (*analysis.Snapshot, error) {
	s, err := analysis.Build(analysisOptions(cfg), log)
	if err != nil {
		return nil, fmt.Errorf("building analysis from %s: %w", cfg.DataFile, err)
	}
	return s, nil
}
