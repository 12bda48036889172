package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"energy_dashboard/internal/analysis"
	"energy_dashboard/internal/model"
	"energy_dashboard/internal/predictor"
	"energy_dashboard/internal/stats"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Source answers dashboard queries.
type Source interface {
	Overview() analysis.Overview
	View(category model.TimeCategory) stats.ChartView
	PredictVoltage(voltage *float64) predictor.Prediction
}

// Handler manages WebSocket connections and routes queries to the snapshot.
type Handler struct {
	hub    *Hub
	source Source
	log    *zap.Logger
}

func NewHandler(hub *Hub, source Source, log *zap.Logger) *Handler {
	return &Handler{hub: hub, source: source, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade error", zap.Error(err))
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	// Header scalars first, then the unfiltered charts.
	h.reply(client, TypeSummaryLoaded, h.source.Overview())
	h.reply(client, TypeViewUpdate, h.source.View(model.CategoryAll))

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.log.Debug("Invalid message", zap.Error(err))
		h.reply(c, TypeError, ErrorPayload{Message: "invalid message"})
		return
	}

	switch env.Type {
	case TypeViewFilter:
		var p ViewFilterPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.log.Debug("Invalid view:filter payload", zap.Error(err))
			h.reply(c, TypeError, ErrorPayload{Message: "invalid view:filter payload"})
			return
		}
		if p.Category == "" {
			p.Category = model.CategoryAll
		}
		h.reply(c, TypeViewUpdate, h.source.View(p.Category))

	case TypePredictVoltage:
		var p PredictVoltagePayload
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				// A non-numeric voltage is treated as absent.
				h.log.Debug("Invalid predict:voltage payload", zap.Error(err))
				p.Voltage = nil
			}
		}
		h.reply(c, TypePredictionResult, PredictionFromProbe(h.source.PredictVoltage(p.Voltage)))

	default:
		h.log.Debug("Unknown message type", zap.String("type", env.Type))
		h.reply(c, TypeError, ErrorPayload{Message: "unknown message type: " + env.Type})
	}
}

func (h *Handler) reply(c *Client, msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		h.log.Error("Error creating message", zap.String("type", msgType), zap.Error(err))
		return
	}
	h.hub.Send(c, msg)
}
