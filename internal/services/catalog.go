package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/GregMSThompson/dashboard-builder/internal/catalog"
	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/format"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/record"
	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

type catalogService struct {
	source     recordSource
	selections selectionStore
}

func NewCatalogService(src recordSource, selections selectionStore) *catalogService {
	return &catalogService{source: src, selections: selections}
}

// GetCatalog returns the current catalog, narrowed to what kind can bind and
// to labels matching query. An empty or unknown kind does not filter.
func (s *catalogService) GetCatalog(_ context.Context, kind models.WidgetKind, query string) (dto.CatalogResponse, error) {
	snap := s.source.Snapshot()
	fields := snap.Fields
	if kind != "" {
		fields = catalog.FilterFor(fields, kind)
	}
	fields = catalog.Search(fields, query)

	out := make([]dto.CatalogField, 0, len(fields))
	for _, f := range fields {
		v, _ := record.Resolve(snap.Record, f.Path)
		out = append(out, dto.CatalogField{FieldDescriptor: f, Preview: format.Field(v, f)})
	}
	return dto.CatalogResponse{RecordVersion: snap.Version, Kind: kind, Fields: out}, nil
}

func (s *catalogService) GetCategories(_ context.Context, query string) (dto.CategoriesResponse, error) {
	snap := s.source.Snapshot()
	groups := catalog.GroupByCategory(catalog.Search(snap.Fields, query))
	if groups == nil {
		groups = []catalog.Group{}
	}
	return dto.CategoriesResponse{RecordVersion: snap.Version, Categories: groups}, nil
}

func (s *catalogService) GetSelection(ctx context.Context, uid string) (dto.SelectionResponse, error) {
	sel, err := s.selections.Get(ctx, uid)
	if err != nil {
		return dto.SelectionResponse{}, err
	}
	return dto.SelectionResponse{FieldIDs: append([]string{}, sel...)}, nil
}

// SaveSelection replaces the user's selection. Every id must be in the
// current catalog.
func (s *catalogService) SaveSelection(ctx context.Context, uid string, req dto.SelectionRequest) (dto.SelectionResponse, error) {
	fields := s.source.Snapshot().Fields
	idx := catalog.Index(fields)

	var unknown []string
	for _, id := range req.FieldIDs {
		if _, ok := idx[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return dto.SelectionResponse{}, errs.NewValidationError(fmt.Sprintf("unknown field ids: %s", strings.Join(unknown, ", ")))
	}

	resp, err := s.updateSelection(ctx, uid, func(catalog.Selection) catalog.Selection {
		return catalog.Selection(req.FieldIDs).Known(fields)
	})
	if err != nil {
		return dto.SelectionResponse{}, err
	}
	logger.FromContext(ctx).Info("field selection saved", "fields", len(resp.FieldIDs))
	return resp, nil
}

func (s *catalogService) ToggleField(ctx context.Context, uid string, req dto.ToggleFieldRequest) (dto.SelectionResponse, error) {
	if _, ok := catalog.Lookup(s.source.Snapshot().Fields, req.FieldID); !ok {
		return dto.SelectionResponse{}, errs.NewValidationError(fmt.Sprintf("unknown field %q", req.FieldID))
	}
	return s.updateSelection(ctx, uid, func(sel catalog.Selection) catalog.Selection {
		return sel.Toggle(req.FieldID)
	})
}

// SelectCategory selects every field of a category, or clears the category
// when it is already fully selected.
func (s *catalogService) SelectCategory(ctx context.Context, uid string, req dto.SelectCategoryRequest) (dto.SelectionResponse, error) {
	fields := s.source.Snapshot().Fields
	found := false
	for _, g := range catalog.GroupByCategory(fields) {
		if g.Category == req.Category {
			found = true
			break
		}
	}
	if !found {
		return dto.SelectionResponse{}, errs.NewNotFoundError(fmt.Sprintf("category %q not found", req.Category))
	}
	return s.updateSelection(ctx, uid, func(sel catalog.Selection) catalog.Selection {
		return sel.SelectAllInCategory(fields, req.Category)
	})
}

func (s *catalogService) updateSelection(ctx context.Context, uid string, fn func(catalog.Selection) catalog.Selection) (dto.SelectionResponse, error) {
	next, err := s.selections.Apply(ctx, uid, fn)
	if err != nil {
		return dto.SelectionResponse{}, err
	}
	return dto.SelectionResponse{FieldIDs: append([]string{}, next...)}, nil
}
