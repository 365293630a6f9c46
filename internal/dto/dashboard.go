package dto

import (
	"github.com/GregMSThompson/dashboard-builder/internal/catalog"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/render"
)

// --- Request types ---

// CreateWidgetRequest adds a widget. Only Kind is required; an empty title
// takes the palette title and zero sizes take the 2x2 default.
type CreateWidgetRequest struct {
	Kind   models.WidgetKind  `json:"kind"`
	Title  string             `json:"title"`
	Fields []string           `json:"fields"`
	Width  int                `json:"width"`
	Height int                `json:"height"`
	Config *models.KindConfig `json:"config"`
}

// UpdateWidgetRequest is an editor save. The widget is replaced as a whole;
// an empty kind keeps the current kind and zero sizes keep the current size.
type UpdateWidgetRequest struct {
	Kind   models.WidgetKind  `json:"kind"`
	Title  string             `json:"title"`
	Fields []string           `json:"fields"`
	Width  int                `json:"width"`
	Height int                `json:"height"`
	Config *models.KindConfig `json:"config"`
}

// ReorderWidgetsRequest is one drop event: MovedID takes TargetID's place.
type ReorderWidgetsRequest struct {
	MovedID  string `json:"movedId"`
	TargetID string `json:"targetId"`
}

// --- Response types ---

type DashboardResponse struct {
	Widgets []models.Widget `json:"widgets"`
}

type RenderResponse struct {
	RecordVersion uint64           `json:"recordVersion"`
	Widgets       []render.Request `json:"widgets"`
}

// DashboardSnapshot is the persistence wire format: the ordered widgets and
// the selected field ids.
type DashboardSnapshot struct {
	Widgets        []models.Widget `json:"widgets"`
	SelectedFields []string        `json:"selectedFields"`
}

// WidgetTypeEntry is one palette entry plus the value type its fields bind.
type WidgetTypeEntry struct {
	Kind        models.WidgetKind `json:"kind"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Binds       models.ValueType  `json:"binds"`
	FieldSlots  []string          `json:"fieldSlots"`
}

// --- Catalog ---

// CatalogField is a descriptor plus its current value formatted by the
// descriptor's inferred format.
type CatalogField struct {
	models.FieldDescriptor
	Preview string `json:"preview"`
}

type CatalogResponse struct {
	RecordVersion uint64            `json:"recordVersion"`
	Kind          models.WidgetKind `json:"kind,omitempty"`
	Fields        []CatalogField    `json:"fields"`
}

type CategoriesResponse struct {
	RecordVersion uint64          `json:"recordVersion"`
	Categories    []catalog.Group `json:"categories"`
}

type SelectionRequest struct {
	FieldIDs []string `json:"fieldIds"`
}

type ToggleFieldRequest struct {
	FieldID string `json:"fieldId"`
}

type SelectCategoryRequest struct {
	Category string `json:"category"`
}

type SelectionResponse struct {
	FieldIDs []string `json:"fieldIds"`
}
