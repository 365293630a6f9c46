package services

import (
	"context"
	"fmt"

	"github.com/GregMSThompson/dashboard-builder/internal/catalog"
	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/layout"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/render"
	"github.com/GregMSThompson/dashboard-builder/internal/source"
	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

// dashboardStore holds each user's widget collection.
type dashboardStore interface {
	Get(ctx context.Context, uid string) (layout.Collection, error)
	Apply(ctx context.Context, uid string, fn func(layout.Collection) (layout.Collection, error)) (layout.Collection, error)
	Replace(ctx context.Context, uid string, c layout.Collection) error
}

// selectionStore is the persistence stub for selected catalog fields.
type selectionStore interface {
	Get(ctx context.Context, uid string) (catalog.Selection, error)
	Apply(ctx context.Context, uid string, fn func(catalog.Selection) catalog.Selection) (catalog.Selection, error)
}

// recordSource publishes the current record and its catalog.
type recordSource interface {
	Snapshot() *source.Snapshot
}

type dashboardService struct {
	store      dashboardStore
	selections selectionStore
	source     recordSource
	defaults   func() layout.Collection
}

func NewDashboardService(store dashboardStore, selections selectionStore, src recordSource, defaults func() layout.Collection) *dashboardService {
	if defaults == nil {
		defaults = layout.Default
	}
	return &dashboardService{store: store, selections: selections, source: src, defaults: defaults}
}

// --- Public service methods ---

func (s *dashboardService) GetDashboard(ctx context.Context, uid string) ([]models.Widget, error) {
	c, err := s.store.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	return c.Widgets(), nil
}

func (s *dashboardService) AddWidget(ctx context.Context, uid string, req dto.CreateWidgetRequest) (models.Widget, error) {
	tpl, ok := layout.TemplateFor(req.Kind)
	if !ok {
		return models.Widget{}, errs.NewValidationError(fmt.Sprintf("unknown widget kind %q", req.Kind))
	}

	w := layout.NewWidget(req.Kind, req.Title)
	if w.Title == "" {
		w.Title = tpl.Title
	}
	if req.Fields != nil {
		w.Fields = append([]string(nil), req.Fields...)
	}
	if req.Width != 0 {
		w.Width = req.Width
	}
	if req.Height != 0 {
		w.Height = req.Height
	}
	w.Config = req.Config

	if err := s.validateWidget(w); err != nil {
		return models.Widget{}, err
	}

	if _, err := s.store.Apply(ctx, uid, func(c layout.Collection) (layout.Collection, error) {
		return c.Append(w)
	}); err != nil {
		return models.Widget{}, err
	}

	logger.FromContext(ctx).Info("widget added", "widget_id", w.ID, "kind", w.Kind)
	return w, nil
}

// UpdateWidget replaces a widget in place, keeping its position. Validation
// runs before anything is stored, so a rejected edit leaves the previous
// widget untouched.
func (s *dashboardService) UpdateWidget(ctx context.Context, uid, widgetID string, req dto.UpdateWidgetRequest) (models.Widget, error) {
	var updated models.Widget
	_, err := s.store.Apply(ctx, uid, func(c layout.Collection) (layout.Collection, error) {
		current, ok := c.Get(widgetID)
		if !ok {
			return c, errs.NewNotFoundError("widget not found")
		}

		updated = current.Clone()
		if req.Kind != "" {
			updated.Kind = req.Kind
		}
		updated.Title = req.Title
		updated.Fields = append([]string{}, req.Fields...)
		if req.Width != 0 {
			updated.Width = req.Width
		}
		if req.Height != 0 {
			updated.Height = req.Height
		}
		updated.Config = req.Config

		if err := s.validateWidget(updated); err != nil {
			return c, err
		}
		return c.Update(updated), nil
	})
	if err != nil {
		return models.Widget{}, err
	}
	return updated, nil
}

// ReorderWidgets applies one drop event. Unknown ids leave the order as is.
func (s *dashboardService) ReorderWidgets(ctx context.Context, uid string, req dto.ReorderWidgetsRequest) ([]models.Widget, error) {
	c, err := s.store.Apply(ctx, uid, func(c layout.Collection) (layout.Collection, error) {
		next := c.Reorder(req.MovedID, req.TargetID)
		if req.MovedID != req.TargetID && sameOrder(c, next) {
			logger.FromContext(ctx).Debug("reorder ignored", "moved_id", req.MovedID, "target_id", req.TargetID)
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return c.Widgets(), nil
}

// DeleteWidget removes a widget. Deleting an absent id succeeds.
func (s *dashboardService) DeleteWidget(ctx context.Context, uid, widgetID string) error {
	_, err := s.store.Apply(ctx, uid, func(c layout.Collection) (layout.Collection, error) {
		return c.Remove(widgetID), nil
	})
	return err
}

func (s *dashboardService) GetWidgetData(ctx context.Context, uid, widgetID string) (render.Request, error) {
	c, err := s.store.Get(ctx, uid)
	if err != nil {
		return render.Request{}, err
	}
	w, ok := c.Get(widgetID)
	if !ok {
		return render.Request{}, errs.NewNotFoundError("widget not found")
	}
	snap := s.source.Snapshot()
	return render.Render(w, snap.Record, render.WithCatalog(snap.Fields)), nil
}

func (s *dashboardService) RenderDashboard(ctx context.Context, uid string) (dto.RenderResponse, error) {
	c, err := s.store.Get(ctx, uid)
	if err != nil {
		return dto.RenderResponse{}, err
	}
	snap := s.source.Snapshot()
	reqs := render.RenderAll(c.Widgets(), snap.Record, render.WithCatalog(snap.Fields))

	if logger.IsDebugEnabled(ctx) {
		var empty []string
		for _, r := range reqs {
			if r.NoData {
				empty = append(empty, r.WidgetID)
			}
		}
		if len(empty) > 0 {
			logger.FromContext(ctx).Debug("widgets without data", "widget_ids", empty, "record_version", snap.Version)
		}
	}
	return dto.RenderResponse{RecordVersion: snap.Version, Widgets: reqs}, nil
}

func (s *dashboardService) Export(ctx context.Context, uid string) (dto.DashboardSnapshot, error) {
	c, err := s.store.Get(ctx, uid)
	if err != nil {
		return dto.DashboardSnapshot{}, err
	}
	sel, err := s.selections.Get(ctx, uid)
	if err != nil {
		return dto.DashboardSnapshot{}, err
	}
	return dto.DashboardSnapshot{
		Widgets:        c.Widgets(),
		SelectedFields: append([]string{}, sel...),
	}, nil
}

func (s *dashboardService) Reset(ctx context.Context, uid string) ([]models.Widget, error) {
	c := s.defaults()
	if err := s.store.Replace(ctx, uid, c); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("dashboard reset", "widgets", c.Len())
	return c.Widgets(), nil
}

// GetWidgetTypes returns the palette with the value type each kind binds.
func (s *dashboardService) GetWidgetTypes() []dto.WidgetTypeEntry {
	tpls := layout.Templates()
	out := make([]dto.WidgetTypeEntry, 0, len(tpls))
	for _, t := range tpls {
		vt, _ := catalog.ValueTypeFor(t.Kind)
		out = append(out, dto.WidgetTypeEntry{
			Kind:        t.Kind,
			Title:       t.Title,
			Description: t.Description,
			Binds:       vt,
			FieldSlots:  catalog.Slots(t.Kind),
		})
	}
	return out
}

// --- Validation ---

// validateWidget checks structure, then the bound fields against the
// current catalog.
func (s *dashboardService) validateWidget(w models.Widget) error {
	if err := layout.Validate(w); err != nil {
		return err
	}
	return catalog.CheckBinding(w, s.source.Snapshot().Fields)
}

func sameOrder(a, b layout.Collection) bool {
	x, y := a.IDs(), b.IDs()
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
