package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"energy_dashboard/internal/analysis"
	"energy_dashboard/internal/stats"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print dashboard statistics",
	Long:  `Loads the data file and prints the headline statistics, the consumption breakdown, the model scores and the 24-hour profile.`,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	snapshot, err := buildSnapshot(cfg, log)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), snapshot)
	return nil
}

func printSummary(w io.Writer, s *analysis.Snapshot) {
	o := s.Overview()
	sum := o.Summary
	ls := s.LoadStats()

	fmt.Fprintln(w)
	fmt.Fprintln(w, o.Title)
	fmt.Fprintf(w, "  Data: %s to %s (%d hourly records)\n",
		o.Start.Format("2006-01-02 15:04"), o.End.Format("2006-01-02 15:04"), o.Records)
	fmt.Fprintf(w, "  Rows: %d read, %d bad timestamp, %d missing value\n",
		ls.Rows, ls.BadTimestamp, ls.MissingValue)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Avg hourly usage:        %.3f kWh\n", sum.AvgHourlyUsage)
	fmt.Fprintf(w, "  Peak hour:               %02d:00\n", sum.PeakHour)
	fmt.Fprintf(w, "  Avg sub-metering usage:  %.3f Wh\n", sum.AvgSubMeteringUsage)
	fmt.Fprintf(w, "  Total energy:            %.2f kWh\n", sum.TotalEnergyKWh)
	if o.ModelR2 != nil {
		fmt.Fprintf(w, "  Model R²:                %.3f\n", *o.ModelR2)
		fmt.Fprintf(w, "  Model MAE:               %.3f\n", *o.ModelMAE)
	} else {
		fmt.Fprintln(w, "  Model:                   not available")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Consumption Breakdown:")
	fmt.Fprintf(w, "   %-36s │ %10s\n", "Category", "kWh")
	fmt.Fprintf(w, "  ──────────────────────────────────────┼───────────\n")
	for _, e := range sum.Breakdown {
		fmt.Fprintf(w, "   %-36s │ %10.2f\n", e.Category, e.KWh)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Hourly Profile:")
	fmt.Fprintf(w, "   %4s │ %8s\n", "Hour", "kWh")
	fmt.Fprintf(w, "  ──────┼──────────\n")
	for _, p := range stats.HourlyProfile(s.Table()) {
		marker := ""
		if p.Hour == sum.PeakHour {
			marker = "  ← peak"
		}
		fmt.Fprintf(w, "     %02d │ %8.3f%s\n", p.Hour, p.EnergyKWh, marker)
	}
	fmt.Fprintln(w)
}
