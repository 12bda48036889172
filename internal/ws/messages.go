package ws

import (
	"encoding/json"

	"energy_dashboard/internal/analysis"
	"energy_dashboard/internal/model"
	"energy_dashboard/internal/predictor"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeViewFilter     = "view:filter"
	TypePredictVoltage = "predict:voltage"

	// Server -> Client
	TypeSummaryLoaded    = "summary:loaded"
	TypeViewUpdate       = "view:update"
	TypePredictionResult = "prediction:result"
	TypeError            = "error"
)

// Client -> Server messages

type ViewFilterPayload struct {
	Category model.TimeCategory `json:"category"`
}

// PredictVoltagePayload carries the probe voltage. A null or absent value
// yields an unavailable prediction.
type PredictVoltagePayload struct {
	Voltage *float64 `json:"voltage"`
}

// Server -> Client messages

type SummaryLoadedPayload = analysis.Overview

type PredictionResultPayload struct {
	predictor.Prediction
	Display string `json:"display"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func PredictionFromProbe(p predictor.Prediction) PredictionResultPayload {
	return PredictionResultPayload{Prediction: p, Display: p.String()}
}
