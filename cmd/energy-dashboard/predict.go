package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"energy_dashboard/internal/analysis"
	"energy_dashboard/internal/predictor"
)

var (
	predictVoltage float64
	predictModel   string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict hourly energy at a given voltage",
	Long: `Predicts hourly energy consumption with every feature held at its dataset
mean except voltage. Without --voltage the result is N/A.`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().Float64Var(&predictVoltage, "voltage", 0, "probe voltage in volts")
	predictCmd.Flags().StringVar(&predictModel, "model", "", "use a saved model file instead of training")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	snapshot, err := buildSnapshot(cfg, log)
	if err != nil {
		return err
	}

	if predictModel != "" {
		if snapshot, err = withSavedModel(snapshot, predictModel); err != nil {
			return err
		}
	}

	var voltage *float64
	if cmd.Flags().Changed("voltage") {
		voltage = &predictVoltage
	}

	fmt.Fprintln(cmd.OutOrStdout(), snapshot.PredictVoltage(voltage))
	return nil
}

func withSavedModel(s *analysis.Snapshot, path string) (*analysis.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	m, err := predictor.LoadModel(data)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}
	return s.WithModel(m), nil
}
