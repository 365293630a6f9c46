package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/middleware"
	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

// Live upgrades to a WebSocket and keeps the client's dashboard in sync.
// Every edit and every record reload is answered with a full render.
func (h *dashboardHandlers) Live(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.OriginPatterns,
	})
	if err != nil {
		log.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	uid := middleware.UID(ctx)

	if h.Source != nil {
		updates, unsubscribe := h.Source.Subscribe()
		defer unsubscribe()
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case snap := <-updates:
					log.Debug("pushing reloaded record", "version", snap.Version)
					h.pushDashboard(ctx, conn, uid)
				}
			}
		}()
	}

	h.pushDashboard(ctx, conn, uid)

	for {
		var msg dto.LiveMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				log.Warn("websocket read failed", "error", err)
			}
			return
		}

		switch msg.Type {
		case dto.LivePing:
			h.send(ctx, conn, dto.LiveMessage{Type: dto.LivePong})
		case dto.LiveRefresh:
			h.pushDashboard(ctx, conn, uid)
		case dto.LiveReorder:
			_, err := h.DashboardSvc.ReorderWidgets(ctx, uid, dto.ReorderWidgetsRequest{
				MovedID:  msg.MovedID,
				TargetID: msg.TargetID,
			})
			h.afterEdit(ctx, conn, uid, err)
		case dto.LiveRemove:
			h.afterEdit(ctx, conn, uid, h.DashboardSvc.DeleteWidget(ctx, uid, msg.WidgetID))
		case dto.LiveUpdate:
			if msg.Widget == nil {
				h.sendError(ctx, conn, errs.NewValidationError("update requires a widget"))
				continue
			}
			_, err := h.DashboardSvc.UpdateWidget(ctx, uid, msg.Widget.ID, dto.UpdateWidgetRequest{
				Kind:   msg.Widget.Kind,
				Title:  msg.Widget.Title,
				Fields: msg.Widget.Fields,
				Width:  msg.Widget.Width,
				Height: msg.Widget.Height,
				Config: msg.Widget.Config,
			})
			h.afterEdit(ctx, conn, uid, err)
		default:
			h.sendError(ctx, conn, errs.NewValidationError(fmt.Sprintf("unknown message type: %s", msg.Type)))
		}
	}
}

func (h *dashboardHandlers) afterEdit(ctx context.Context, conn *websocket.Conn, uid string, err error) {
	if err != nil {
		h.sendError(ctx, conn, err)
		return
	}
	h.pushDashboard(ctx, conn, uid)
}

func (h *dashboardHandlers) pushDashboard(ctx context.Context, conn *websocket.Conn, uid string) {
	resp, err := h.DashboardSvc.RenderDashboard(ctx, uid)
	if err != nil {
		h.sendError(ctx, conn, err)
		return
	}
	h.send(ctx, conn, dto.LiveMessage{
		Type:          dto.LiveDashboard,
		RecordVersion: resp.RecordVersion,
		Widgets:       resp.Widgets,
	})
}

func (h *dashboardHandlers) sendError(ctx context.Context, conn *websocket.Conn, err error) {
	h.send(ctx, conn, dto.LiveMessage{Type: dto.LiveError, Error: err.Error()})
}

func (h *dashboardHandlers) send(ctx context.Context, conn *websocket.Conn, msg dto.LiveMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		logger.FromContext(ctx).Debug("websocket write failed", "type", msg.Type, "error", err)
	}
}
