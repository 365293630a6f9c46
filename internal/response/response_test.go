package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/dashboard-builder/internal/errs"
	"github.com/GregMSThompson/dashboard-builder/pkg/logger"
)

func newHandler() *responseHandler {
	return New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
}

func TestWriteSuccess_Envelope(t *testing.T) {
	h := newHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.WriteSuccess(rr, req, http.StatusCreated, map[string]string{"id": "w1"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Data["id"] != "w1" {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", errs.NewNotFoundError("widget not found"), http.StatusNotFound, "not_found"},
		{"already exists", errs.NewAlreadyExistsError("exists"), http.StatusConflict, "already_exists"},
		{"duplicate id", errs.NewDuplicateIDError("w1"), http.StatusConflict, "duplicate_id"},
		{"validation", errs.NewValidationError("bad width"), http.StatusBadRequest, "invalid_input"},
		{"source", errs.NewSourceError("data.json", errors.New("gone")), http.StatusServiceUnavailable, "source_unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rr := httptest.NewRecorder()

			h.HandleError(rr, req, tt.err)

			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rr.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.code || body.Success {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}
