package handlers

import (
	"net/http"

	"github.com/GregMSThompson/dashboard-builder/internal/response"
)

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
	Source          recordSource
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{ResponseHandler: deps.ResponseHandler, Source: deps.Source}
}

type healthResponse struct {
	Status        string `json:"status"`
	RecordVersion uint64 `json:"recordVersion"`
	Fields        int    `json:"fields"`
}

func (h *healthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if snap := h.Source.Snapshot(); snap != nil {
		resp.RecordVersion = snap.Version
		resp.Fields = len(snap.Fields)
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}
