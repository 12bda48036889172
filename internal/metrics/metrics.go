package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ViewQueries counts filtered chart view requests by category.
	ViewQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energy_view_queries_total",
		Help: "Number of chart view queries by time category.",
	}, []string{"category"})

	// Predictions counts voltage probes by outcome.
	Predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energy_predictions_total",
		Help: "Number of voltage prediction requests by outcome.",
	}, []string{"outcome"})

	// HourlyRecords is the size of the loaded hourly table.
	HourlyRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "energy_hourly_records",
		Help: "Number of hourly records in the loaded table.",
	})

	// ModelScore holds the held-out scores of the trained model.
	ModelScore = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "energy_model_score",
		Help: "Held-out score of the regression model (r2, mae).",
	}, []string{"metric"})

	// WebSocketClients is the number of connected dashboard clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "energy_ws_clients",
		Help: "Number of connected WebSocket clients.",
	})
)
