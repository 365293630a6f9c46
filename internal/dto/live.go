package dto

import (
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/render"
)

// Live message types exchanged over the dashboard WebSocket.
const (
	LiveReorder   = "reorder"
	LiveRemove    = "remove"
	LiveUpdate    = "update"
	LiveRefresh   = "refresh"
	LivePing      = "ping"
	LiveDashboard = "dashboard"
	LivePong      = "pong"
	LiveError     = "error"
)

// LiveMessage is the single envelope for both directions.
type LiveMessage struct {
	Type          string           `json:"type"`
	MovedID       string           `json:"movedId,omitempty"`
	TargetID      string           `json:"targetId,omitempty"`
	WidgetID      string           `json:"widgetId,omitempty"`
	Widget        *models.Widget   `json:"widget,omitempty"`
	RecordVersion uint64           `json:"recordVersion,omitempty"`
	Widgets       []render.Request `json:"widgets,omitempty"`
	Error         string           `json:"error,omitempty"`
}
