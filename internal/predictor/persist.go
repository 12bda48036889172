package predictor

import (
	"encoding/json"
	"fmt"

	"energy_dashboard/internal/model"
)

// Save serializes the model to JSON.
func (m *Model) Save() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// LoadModel deserializes a model and checks it was trained on the current
// feature layout.
func LoadModel(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if len(m.Coefficients) != model.FeatureCount {
		return nil, fmt.Errorf("%w: saved model has %d coefficients", ErrFeatureShape, len(m.Coefficients))
	}
	for i, name := range m.Features {
		if i >= model.FeatureCount || name != model.FeatureNames[i] {
			return nil, fmt.Errorf("%w: saved feature %d is %q", ErrFeatureShape, i, name)
		}
	}
	return &m, nil
}
