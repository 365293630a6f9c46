package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/dashboard-builder/internal/response"
	"github.com/GregMSThompson/dashboard-builder/internal/source"
)

// recordSource is the live record the dashboard renders against.
type recordSource interface {
	Snapshot() *source.Snapshot
	Subscribe() (<-chan *source.Snapshot, func())
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
	CatalogSvc      catalogService
	Source          recordSource
	Firebase        *auth.Client
	AuthMode        string
	// OriginPatterns are the hosts allowed to open the live WebSocket.
	OriginPatterns []string
}
