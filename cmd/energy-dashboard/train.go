package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var trainOut string

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the energy model and save it as JSON",
	RunE:  runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&trainOut, "out", "model.json", "output path for the model file")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	snapshot, err := buildSnapshot(cfg, log)
	if err != nil {
		return err
	}

	m, err := snapshot.Model()
	if m == nil {
		return fmt.Errorf("training model: %w", err)
	}

	data, err := m.Save()
	if err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}
	if err := os.WriteFile(trainOut, data, 0o644); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}

	log.Info("Model saved", zap.String("path", trainOut))
	fmt.Fprintf(cmd.OutOrStdout(), "R²: %.4f   MAE: %.4f   (train %d, test %d)\n", m.R2, m.MAE, m.TrainSize, m.TestSize)
	return nil
}
