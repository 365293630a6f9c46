package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/middleware"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/render"
	"github.com/GregMSThompson/dashboard-builder/internal/response"
)

type dashboardService interface {
	GetDashboard(ctx context.Context, uid string) ([]models.Widget, error)
	AddWidget(ctx context.Context, uid string, req dto.CreateWidgetRequest) (models.Widget, error)
	UpdateWidget(ctx context.Context, uid, widgetID string, req dto.UpdateWidgetRequest) (models.Widget, error)
	ReorderWidgets(ctx context.Context, uid string, req dto.ReorderWidgetsRequest) ([]models.Widget, error)
	DeleteWidget(ctx context.Context, uid, widgetID string) error
	GetWidgetData(ctx context.Context, uid, widgetID string) (render.Request, error)
	RenderDashboard(ctx context.Context, uid string) (dto.RenderResponse, error)
	Export(ctx context.Context, uid string) (dto.DashboardSnapshot, error)
	Reset(ctx context.Context, uid string) ([]models.Widget, error)
	GetWidgetTypes() []dto.WidgetTypeEntry
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
	Source          recordSource
	OriginPatterns  []string
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
		Source:          deps.Source,
		OriginPatterns:  deps.OriginPatterns,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.Post("/widgets", h.AddWidget)
	r.Put("/widgets/reorder", h.ReorderWidgets) // must be before /{widgetId}
	r.Put("/widgets/{widgetId}", h.UpdateWidget)
	r.Delete("/widgets/{widgetId}", h.DeleteWidget)
	r.Get("/widgets/{widgetId}", h.GetWidgetData)
	r.Get("/render", h.RenderDashboard)
	r.Get("/export", h.Export)
	r.Post("/reset", h.Reset)
	r.Get("/widget-types", h.GetWidgetTypes)
	r.Get("/live", h.Live)
	return r
}

func (h *dashboardHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	widgets, err := h.DashboardSvc.GetDashboard(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.DashboardResponse{Widgets: widgets})
}

func (h *dashboardHandlers) AddWidget(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWidgetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	widget, err := h.DashboardSvc.AddWidget(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, widget)
}

func (h *dashboardHandlers) UpdateWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.UpdateWidgetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	widget, err := h.DashboardSvc.UpdateWidget(r.Context(), uid, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, widget)
}

func (h *dashboardHandlers) ReorderWidgets(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderWidgetsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	widgets, err := h.DashboardSvc.ReorderWidgets(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.DashboardResponse{Widgets: widgets})
}

func (h *dashboardHandlers) DeleteWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	if err := h.DashboardSvc.DeleteWidget(r.Context(), uid, widgetID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *dashboardHandlers) GetWidgetData(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	data, err := h.DashboardSvc.GetWidgetData(r.Context(), uid, widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, data)
}

func (h *dashboardHandlers) RenderDashboard(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	resp, err := h.DashboardSvc.RenderDashboard(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *dashboardHandlers) Export(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	snap, err := h.DashboardSvc.Export(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, snap)
}

func (h *dashboardHandlers) Reset(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	widgets, err := h.DashboardSvc.Reset(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.DashboardResponse{Widgets: widgets})
}

// GetWidgetTypes returns the widget palette and the value type each kind binds.
func (h *dashboardHandlers) GetWidgetTypes(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.DashboardSvc.GetWidgetTypes())
}
