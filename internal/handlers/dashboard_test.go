package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/dashboard-builder/internal/dto"
	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/internal/middleware"
	"github.com/GregMSThompson/dashboard-builder/internal/models"
	"github.com/GregMSThompson/dashboard-builder/internal/render"
)

// --- Stubs ---

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error

	errorWriteCalled bool
	errorWriteStatus int
	errorWriteCode   string
	errorWriteMsg    string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, message string) {
	s.errorWriteCalled = true
	s.errorWriteStatus = status
	s.errorWriteCode = code
	s.errorWriteMsg = message
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

type stubDashboardService struct {
	widgets       []models.Widget
	getErr        error
	addWidget     models.Widget
	addErr        error
	updateWidget  models.Widget
	updateErr     error
	reorderErr    error
	deleteErr     error
	dataResp      render.Request
	dataErr       error
	renderResp    dto.RenderResponse
	renderErr     error
	snapshot      dto.DashboardSnapshot
	resetWidgets  []models.Widget
	types         []dto.WidgetTypeEntry
	lastAddReq    dto.CreateWidgetRequest
	lastUpdateID  string
	lastUpdateReq dto.UpdateWidgetRequest
	lastDeleteID  string
	lastDataID    string
	lastReorder   dto.ReorderWidgetsRequest
	lastUID       string
}

func (s *stubDashboardService) GetDashboard(_ context.Context, uid string) ([]models.Widget, error) {
	s.lastUID = uid
	return s.widgets, s.getErr
}

func (s *stubDashboardService) AddWidget(_ context.Context, _ string, req dto.CreateWidgetRequest) (models.Widget, error) {
	s.lastAddReq = req
	return s.addWidget, s.addErr
}

func (s *stubDashboardService) UpdateWidget(_ context.Context, _, widgetID string, req dto.UpdateWidgetRequest) (models.Widget, error) {
	s.lastUpdateID = widgetID
	s.lastUpdateReq = req
	return s.updateWidget, s.updateErr
}

func (s *stubDashboardService) ReorderWidgets(_ context.Context, _ string, req dto.ReorderWidgetsRequest) ([]models.Widget, error) {
	s.lastReorder = req
	return s.widgets, s.reorderErr
}

func (s *stubDashboardService) DeleteWidget(_ context.Context, _, widgetID string) error {
	s.lastDeleteID = widgetID
	return s.deleteErr
}

func (s *stubDashboardService) GetWidgetData(_ context.Context, _, widgetID string) (render.Request, error) {
	s.lastDataID = widgetID
	return s.dataResp, s.dataErr
}

func (s *stubDashboardService) RenderDashboard(_ context.Context, _ string) (dto.RenderResponse, error) {
	return s.renderResp, s.renderErr
}

func (s *stubDashboardService) Export(_ context.Context, _ string) (dto.DashboardSnapshot, error) {
	return s.snapshot, nil
}

func (s *stubDashboardService) Reset(_ context.Context, _ string) ([]models.Widget, error) {
	return s.resetWidgets, nil
}

func (s *stubDashboardService) GetWidgetTypes() []dto.WidgetTypeEntry {
	return s.types
}

// withUID injects a UID into the request context.
func withUID(r *http.Request, uid string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UIDKey, uid)
	return r.WithContext(ctx)
}

// withChiParam injects a chi URL parameter into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// --- Tests ---

func TestGetDashboard_OK(t *testing.T) {
	svc := &stubDashboardService{
		widgets: []models.Widget{{ID: "w1", Kind: models.KindStatCard}},
	}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.GetDashboard(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess with 200, got called=%v status=%d", resp.writeSuccessCalled, resp.writeSuccessStatus)
	}
	data, ok := resp.writeSuccessData.(dto.DashboardResponse)
	if !ok || len(data.Widgets) != 1 {
		t.Fatalf("unexpected payload %#v", resp.writeSuccessData)
	}
	if svc.lastUID != "uid1" {
		t.Errorf("expected uid1, got %s", svc.lastUID)
	}
}

func TestGetDashboard_ServiceError(t *testing.T) {
	svc := &stubDashboardService{getErr: errors.New("store failure")}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.GetDashboard(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError to be called")
	}
}

func TestAddWidget_OK(t *testing.T) {
	svc := &stubDashboardService{
		addWidget: models.Widget{ID: "w1", Kind: models.KindBarChart},
	}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	body := `{"kind":"bar-chart","title":"Quarterly revenue","fields":["revenue.byQuarter"]}`
	req := httptest.NewRequest(http.MethodPost, "/dashboard/widgets", strings.NewReader(body))
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.AddWidget(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("expected WriteSuccess with 201, got called=%v status=%d", resp.writeSuccessCalled, resp.writeSuccessStatus)
	}
	if svc.lastAddReq.Kind != models.KindBarChart {
		t.Errorf("unexpected kind passed to service: %s", svc.lastAddReq.Kind)
	}
	if len(svc.lastAddReq.Fields) != 1 || svc.lastAddReq.Fields[0] != "revenue.byQuarter" {
		t.Errorf("unexpected fields passed to service: %v", svc.lastAddReq.Fields)
	}
}

func TestAddWidget_InvalidJSON(t *testing.T) {
	svc := &stubDashboardService{}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/dashboard/widgets", strings.NewReader("not-json"))
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.AddWidget(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError on invalid JSON")
	}
	var vErr *errs.ValidationError
	if !errors.As(resp.handleError, &vErr) {
		t.Fatalf("expected ValidationError, got %T", resp.handleError)
	}
	if resp.writeSuccessCalled {
		t.Fatal("WriteSuccess should not be called on invalid JSON")
	}
}

func TestAddWidget_UnknownField(t *testing.T) {
	svc := &stubDashboardService{}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/dashboard/widgets", strings.NewReader(`{"kind":"table","colour":"red"}`))
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.AddWidget(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError on unknown body field")
	}
}

func TestAddWidget_ServiceError(t *testing.T) {
	svc := &stubDashboardService{addErr: errs.NewValidationError("unknown widget kind")}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/dashboard/widgets", strings.NewReader(`{"kind":"heatmap"}`))
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.AddWidget(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError on service error")
	}
}

func TestUpdateWidget_OK(t *testing.T) {
	svc := &stubDashboardService{updateWidget: models.Widget{ID: "w1"}}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	body := `{"title":"Net","fields":["revenue.total"],"width":1,"config":{"stat":{"prefix":"~"}}}`
	req := httptest.NewRequest(http.MethodPut, "/dashboard/widgets/w1", strings.NewReader(body))
	req = withUID(req, "uid1")
	req = withChiParam(req, "widgetId", "w1")
	rr := httptest.NewRecorder()
	h.UpdateWidget(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess 200, got called=%v status=%d", resp.writeSuccessCalled, resp.writeSuccessStatus)
	}
	if svc.lastUpdateID != "w1" {
		t.Errorf("expected widgetId=w1, got %s", svc.lastUpdateID)
	}
	if svc.lastUpdateReq.Config == nil || svc.lastUpdateReq.Config.Stat == nil || svc.lastUpdateReq.Config.Stat.Prefix != "~" {
		t.Errorf("config not decoded: %+v", svc.lastUpdateReq.Config)
	}
}

func TestUpdateWidget_NotFound(t *testing.T) {
	svc := &stubDashboardService{updateErr: errs.NewNotFoundError("widget not found")}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodPut, "/dashboard/widgets/missing", strings.NewReader(`{"title":"x"}`))
	req = withUID(req, "uid1")
	req = withChiParam(req, "widgetId", "missing")
	rr := httptest.NewRecorder()
	h.UpdateWidget(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError on not found")
	}
}

func TestReorderWidgets_OK(t *testing.T) {
	svc := &stubDashboardService{}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodPut, "/dashboard/widgets/reorder", strings.NewReader(`{"movedId":"w3","targetId":"w1"}`))
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.ReorderWidgets(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess 200")
	}
	if svc.lastReorder.MovedID != "w3" || svc.lastReorder.TargetID != "w1" {
		t.Errorf("unexpected reorder request: %+v", svc.lastReorder)
	}
}

func TestDeleteWidget_OK(t *testing.T) {
	svc := &stubDashboardService{}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodDelete, "/dashboard/widgets/w1", nil)
	req = withUID(req, "uid1")
	req = withChiParam(req, "widgetId", "w1")
	rr := httptest.NewRecorder()
	h.DeleteWidget(rr, req)

	if !resp.writeSuccessCalled {
		t.Fatal("expected WriteSuccess on delete")
	}
	if svc.lastDeleteID != "w1" {
		t.Errorf("expected widgetId=w1, got %s", svc.lastDeleteID)
	}
}

func TestGetWidgetData_OK(t *testing.T) {
	svc := &stubDashboardService{dataResp: render.Request{WidgetID: "w1"}}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/widgets/w1", nil)
	req = withUID(req, "uid1")
	req = withChiParam(req, "widgetId", "w1")
	rr := httptest.NewRecorder()
	h.GetWidgetData(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess 200")
	}
	if svc.lastDataID != "w1" {
		t.Errorf("expected widgetId=w1, got %s", svc.lastDataID)
	}
}

func TestRenderDashboard_ServiceError(t *testing.T) {
	svc := &stubDashboardService{renderErr: errs.NewSourceError("record.json", errors.New("gone"))}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/render", nil)
	req = withUID(req, "uid1")
	rr := httptest.NewRecorder()
	h.RenderDashboard(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError")
	}
}

func TestGetWidgetTypes_OK(t *testing.T) {
	svc := &stubDashboardService{types: []dto.WidgetTypeEntry{{Kind: models.KindTable}}}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/widget-types", nil)
	rr := httptest.NewRecorder()
	h.GetWidgetTypes(rr, req)

	if !resp.writeSuccessCalled {
		t.Fatal("expected WriteSuccess")
	}
	types, ok := resp.writeSuccessData.([]dto.WidgetTypeEntry)
	if !ok || len(types) != 1 {
		t.Fatalf("unexpected payload %#v", resp.writeSuccessData)
	}
}

func TestDashboardRoutes_ReorderNotShadowed(t *testing.T) {
	svc := &stubDashboardService{}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodPut, "/widgets/reorder", strings.NewReader(`{"movedId":"a","targetId":"b"}`))
	rr := httptest.NewRecorder()
	h.DashboardRoutes().ServeHTTP(rr, req)

	if svc.lastReorder.MovedID != "a" {
		t.Fatal("reorder route was not reached")
	}
	if svc.lastUpdateID != "" {
		t.Fatal("update route should not be reached")
	}
}
