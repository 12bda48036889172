package predictor

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"energy_dashboard/internal/model"
	"energy_dashboard/internal/store"
)

// NotAvailable is shown when no prediction can be made.
const NotAvailable = "N/A"

// Outcome classifies a point prediction.
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeError       Outcome = "error"
)

// Prediction is the result of a voltage probe.
type Prediction struct {
	Outcome Outcome `json:"outcome"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit,omitempty"`
	Reason  string  `json:"reason,omitempty"`
}

// String renders the prediction for display.
func (p Prediction) String() string {
	switch p.Outcome {
	case OutcomeOK:
		return fmt.Sprintf("%.3f %s", p.Value, p.Unit)
	case OutcomeError:
		return "Error: " + p.Reason
	default:
		return NotAvailable
	}
}

// FeatureMeans averages every feature column over the table. ok is false for
// an empty table.
func FeatureMeans(t *store.HourlyTable) (means model.FeatureVector, ok bool) {
	if t.Empty() {
		return means, false
	}

	cols := make([][]float64, model.FeatureCount)
	for j := range cols {
		cols[j] = make([]float64, 0, t.Len())
	}
	t.Each(func(r model.HourlyRecord) {
		f := r.Features()
		for j := range cols {
			cols[j] = append(cols[j], f[j])
		}
	})

	for j := range cols {
		means[j] = stat.Mean(cols[j], nil)
	}
	return means, true
}

// ProbeVoltage predicts energy with every feature held at its dataset mean
// except voltage. m may be nil when training failed. A missing or
// non-positive voltage never reaches the model.
func ProbeVoltage(m *Model, means model.FeatureVector, voltage *float64, unit string) Prediction {
	if voltage == nil {
		return Prediction{Outcome: OutcomeUnavailable, Reason: "voltage not provided"}
	}
	if !(*voltage > 0) {
		return Prediction{Outcome: OutcomeUnavailable, Reason: fmt.Sprintf("voltage %g is not positive", *voltage)}
	}
	if m == nil {
		return Prediction{Outcome: OutcomeUnavailable, Reason: "model not trained"}
	}

	v, err := m.Predict(means.WithVoltage(*voltage))
	if err != nil {
		return Prediction{Outcome: OutcomeError, Reason: err.Error()}
	}
	return Prediction{Outcome: OutcomeOK, Value: v, Unit: unit}
}
