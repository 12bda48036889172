package analysis

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"energy_dashboard/internal/ingest"
	"energy_dashboard/internal/metrics"
	"energy_dashboard/internal/model"
	"energy_dashboard/internal/predictor"
	"energy_dashboard/internal/resample"
	"energy_dashboard/internal/stats"
	"energy_dashboard/internal/store"
)

// Title is the dashboard heading.
const Title = "Energy Consumption Analysis System"

// Options controls how a snapshot is built.
type Options struct {
	DataFile  string
	Train     predictor.TrainConfig
	Unit      string
	SampleCap int
}

// DefaultOptions returns options for dataFile with the standard split,
// a "kW" unit suffix and at most 1000 sub-meter chart points.
func DefaultOptions(dataFile string) Options {
	return Options{
		DataFile:  dataFile,
		Train:     predictor.DefaultTrainConfig(),
		Unit:      "kW",
		SampleCap: 1000,
	}
}

// Snapshot is the read-only result of the startup pipeline. Every query
// method is safe for concurrent use.
type Snapshot struct {
	opts      Options
	loadStats ingest.LoadStats
	table     *store.HourlyTable
	summary   stats.Summary
	model     *predictor.Model
	trainErr  error
	means     model.FeatureVector
}

// Build loads the data file and runs the pipeline. A load failure or an
// empty hourly table is fatal. A training failure is logged and leaves the
// snapshot without a model.
func Build(opts Options, log *zap.Logger) (*Snapshot, error) {
	log.Info("Loading data file", zap.String("path", opts.DataFile))
	readings, ls, err := ingest.LoadFile(opts.DataFile)
	if err != nil {
		return nil, err
	}
	log.Info("Data loaded",
		zap.Int("rows", ls.Rows),
		zap.Int("bad_timestamp", ls.BadTimestamp),
		zap.Int("missing_value", ls.MissingValue),
		zap.Int("kept", ls.Kept()))

	return FromReadings(readings, ls, opts, log)
}

// FromReadings runs the pipeline on readings that are already loaded.
func FromReadings(readings []model.RawReading, ls ingest.LoadStats, opts Options, log *zap.Logger) (*Snapshot, error) {
	table, err := store.New(resample.Hourly(readings))
	if err != nil {
		return nil, fmt.Errorf("building hourly table: %w", err)
	}
	tr, _ := table.TimeRange()
	log.Info("Resampled to hourly",
		zap.Int("records", table.Len()),
		zap.Time("start", tr.Start),
		zap.Time("end", tr.End))
	metrics.HourlyRecords.Set(float64(table.Len()))

	summary, err := stats.Summarize(table)
	if err != nil {
		return nil, fmt.Errorf("summarizing: %w", err)
	}

	s := &Snapshot{
		opts:      opts,
		loadStats: ls,
		table:     table,
		summary:   summary,
	}
	s.means, _ = predictor.FeatureMeans(table)

	m, err := predictor.Train(table.Records(), opts.Train)
	if err != nil {
		s.trainErr = err
		log.Error("Model training failed, predictions unavailable", zap.Error(err))
		return s, nil
	}
	s.model = m
	metrics.ModelScore.WithLabelValues("r2").Set(m.R2)
	metrics.ModelScore.WithLabelValues("mae").Set(m.MAE)
	log.Info("Model trained",
		zap.Int("train", m.TrainSize),
		zap.Int("test", m.TestSize),
		zap.Float64("r2", m.R2),
		zap.Float64("mae", m.MAE))

	return s, nil
}

// WithModel returns a copy of s that predicts with m instead of the model
// trained at startup.
func (s *Snapshot) WithModel(m *predictor.Model) *Snapshot {
	c := *s
	c.model = m
	c.trainErr = nil
	return &c
}

func (s *Snapshot) Summary() stats.Summary { return s.summary }

func (s *Snapshot) Table() *store.HourlyTable { return s.table }

func (s *Snapshot) LoadStats() ingest.LoadStats { return s.loadStats }

// Model returns the trained model, or nil with the training error.
func (s *Snapshot) Model() (*predictor.Model, error) {
	if s.model == nil {
		return nil, s.trainErr
	}
	return s.model, nil
}

// Categories lists the selectable view filters, ALL first.
func (s *Snapshot) Categories() []model.TimeCategory {
	out := make([]model.TimeCategory, 0, len(model.TimeCategories)+1)
	out = append(out, model.CategoryAll)
	return append(out, model.TimeCategories...)
}

// View returns the chart series for category. Unknown categories give an
// empty view.
func (s *Snapshot) View(category model.TimeCategory) stats.ChartView {
	metrics.ViewQueries.WithLabelValues(metricLabel(category)).Inc()
	return stats.BuildView(s.table, category, s.opts.SampleCap, s.opts.Train.Seed)
}

// PredictVoltage probes the model at voltage with every other feature held at
// its dataset mean.
func (s *Snapshot) PredictVoltage(voltage *float64) predictor.Prediction {
	p := predictor.ProbeVoltage(s.model, s.means, voltage, s.opts.Unit)
	metrics.Predictions.WithLabelValues(string(p.Outcome)).Inc()
	return p
}

// Overview is the set of scalars shown above the charts.
type Overview struct {
	Title      string               `json:"title"`
	Summary    stats.Summary        `json:"summary"`
	ModelR2    *float64             `json:"model_r2"`
	ModelMAE   *float64             `json:"model_mae"`
	Categories []model.TimeCategory `json:"categories"`
	Start      time.Time            `json:"start"`
	End        time.Time            `json:"end"`
	Records    int                  `json:"records"`
}

// Overview collects the dashboard header. Model scores are nil when no
// model is available.
func (s *Snapshot) Overview() Overview {
	tr, _ := s.table.TimeRange()
	o := Overview{
		Title:      Title,
		Summary:    s.summary,
		Categories: s.Categories(),
		Start:      tr.Start,
		End:        tr.End,
		Records:    s.table.Len(),
	}
	if s.model != nil {
		r2, mae := s.model.R2, s.model.MAE
		o.ModelR2 = &r2
		o.ModelMAE = &mae
	}
	return o
}

// metricLabel keeps label cardinality bounded for arbitrary client input.
func metricLabel(c model.TimeCategory) string {
	if c == model.CategoryAll || c.Known() {
		return string(c)
	}
	return "unknown"
}
