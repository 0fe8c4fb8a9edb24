package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/middleware"
	"github.com/GregMSThompson/ngo-dashboard/internal/response"
)

type grantApplicationHandlers struct {
	ResponseHandler     response.ResponseHandler
	GrantApplicationSvc GrantApplicationService
}

func NewGrantApplicationHandlers(deps *Deps) *grantApplicationHandlers {
	return &grantApplicationHandlers{
		ResponseHandler:     deps.ResponseHandler,
		GrantApplicationSvc: deps.GrantApplicationSvc,
	}
}

func (h *grantApplicationHandlers) GrantApplicationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListApplications)
	r.Post("/", h.SubmitApplication)
	r.Put("/{applicationId}/status", h.UpdateStatus)
	return r
}

func (h *grantApplicationHandlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.ApplicationFilter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.GrantApplicationSvc.Search(r.Context(), filter))
}

func (h *grantApplicationHandlers) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var draft dto.GrantApplicationDraft
	if err := decodeJSON(r, &draft); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if uid := middleware.UID(r.Context()); uid != "" {
		draft.CreatedBy = uid
	}
	res, err := h.GrantApplicationSvc.Submit(r.Context(), draft, dto.SubmitHooks{})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, res)
}

func (h *grantApplicationHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "applicationId")
	var req dto.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	app, err := h.GrantApplicationSvc.UpdateStatus(r.Context(), id, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, app)
}
