package handlers

import (
	"net/http"

	"github.com/GregMSThompson/ngo-dashboard/internal/response"
)

type overviewHandlers struct {
	ResponseHandler response.ResponseHandler
	OverviewSvc     OverviewService
}

func NewOverviewHandlers(deps *Deps) *overviewHandlers {
	return &overviewHandlers{
		ResponseHandler: deps.ResponseHandler,
		OverviewSvc:     deps.OverviewSvc,
	}
}

func (h *overviewHandlers) GetOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.OverviewSvc.Overview(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, ov)
}

func (h *overviewHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
