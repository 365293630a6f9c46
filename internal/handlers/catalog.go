package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/middleware"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/response"
)

type catalogService interface {
	GetCatalog(ctx context.Context, kind models.WidgetKind, query string) (dto.CatalogResponse, error)
	GetCategories(ctx context.Context, query string) (dto.CategoriesResponse, error)
	GetSelection(ctx context.Context, uid string) (dto.SelectionResponse, error)
	SaveSelection(ctx context.Context, uid string, req dto.SelectionRequest) (dto.SelectionResponse, error)
	ToggleField(ctx context.Context, uid string, req dto.ToggleFieldRequest) (dto.SelectionResponse, error)
	SelectCategory(ctx context.Context, uid string, req dto.SelectCategoryRequest) (dto.SelectionResponse, error)
}

type catalogHandlers struct {
	ResponseHandler response.ResponseHandler
	CatalogSvc      catalogService
}

func NewCatalogHandlers(deps *Deps) *catalogHandlers {
	return &catalogHandlers{
		ResponseHandler: deps.ResponseHandler,
		CatalogSvc:      deps.CatalogSvc,
	}
}

func (h *catalogHandlers) CatalogRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetCatalog)
	r.Get("/categories", h.GetCategories)
	r.Get("/selection", h.GetSelection)
	r.Put("/selection", h.SaveSelection)
	r.Post("/selection/toggle", h.ToggleField)
	r.Post("/selection/category", h.SelectCategory)
	return r
}

// GetCatalog lists catalog fields. ?kind= narrows to fields that kind can
// bind, ?q= matches labels.
func (h *catalogHandlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.CatalogSvc.GetCatalog(r.Context(), models.WidgetKind(q.Get("kind")), q.Get("q"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *catalogHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := h.CatalogSvc.GetCategories(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *catalogHandlers) GetSelection(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	resp, err := h.CatalogSvc.GetSelection(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *catalogHandlers) SaveSelection(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	resp, err := h.CatalogSvc.SaveSelection(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *catalogHandlers) ToggleField(w http.ResponseWriter, r *http.Request) {
	var req dto.ToggleFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	resp, err := h.CatalogSvc.ToggleField(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *catalogHandlers) SelectCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	resp, err := h.CatalogSvc.SelectCategory(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
