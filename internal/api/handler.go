package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"energy_dashboard/internal/analysis"
	"energy_dashboard/internal/ingest"
	"energy_dashboard/internal/model"
	"energy_dashboard/internal/predictor"
	"energy_dashboard/internal/stats"
)

// Source answers dashboard queries.
type Source interface {
	Overview() analysis.Overview
	View(category model.TimeCategory) stats.ChartView
	PredictVoltage(voltage *float64) predictor.Prediction
	Model() (*predictor.Model, error)
	LoadStats() ingest.LoadStats
}

type Handler struct {
	source Source
	logger *zap.Logger
}

func NewHandler(source Source, logger *zap.Logger) *Handler {
	return &Handler{
		source: source,
		logger: logger,
	}
}

// GetSummary handles GET /api/summary
func (h *Handler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.source.Overview())
}

// GetView handles GET /api/view?category=
func (h *Handler) GetView(c *fiber.Ctx) error {
	category := model.TimeCategory(c.Query("category", string(model.CategoryAll)))
	return c.JSON(h.source.View(category))
}

// PredictionResponse is a voltage probe with its display string.
type PredictionResponse struct {
	predictor.Prediction
	Display string `json:"display"`
}

// GetPredict handles GET /api/predict?voltage=
// A missing or non-numeric voltage is answered with an unavailable
// prediction rather than a client error.
func (h *Handler) GetPredict(c *fiber.Ctx) error {
	var voltage *float64
	if raw := strings.TrimSpace(c.Query("voltage")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.logger.Debug("Ignoring non-numeric voltage", zap.String("voltage", raw))
		} else {
			voltage = &v
		}
	}

	p := h.source.PredictVoltage(voltage)
	return c.JSON(PredictionResponse{Prediction: p, Display: p.String()})
}

// GetModel handles GET /api/model
func (h *Handler) GetModel(c *fiber.Ctx) error {
	m, err := h.source.Model()
	if m == nil {
		details := "model not trained"
		if err != nil {
			details = err.Error()
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Model not available",
			"details": details,
		})
	}
	return c.JSON(m)
}

// GetLoadStats handles GET /api/load-stats
func (h *Handler) GetLoadStats(c *fiber.Ctx) error {
	ls := h.source.LoadStats()
	return c.JSON(fiber.Map{
		"rows":          ls.Rows,
		"bad_timestamp": ls.BadTimestamp,
		"missing_value": ls.MissingValue,
		"kept":          ls.Kept(),
	})
}
