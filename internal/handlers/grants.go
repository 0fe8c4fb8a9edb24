package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/response"
)

type grantHandlers struct {
	ResponseHandler response.ResponseHandler
	CatalogSvc      CatalogService
}

func NewGrantHandlers(deps *Deps) *grantHandlers {
	return &grantHandlers{
		ResponseHandler: deps.ResponseHandler,
		CatalogSvc:      deps.CatalogSvc,
	}
}

func (h *grantHandlers) GrantRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListGrants)
	r.Get("/{grantId}", h.GetGrant)
	return r
}

func (h *grantHandlers) ListGrants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dto.GrantFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}

	var err error
	if filter.MinAmount, err = parseAmount(q.Get("minAmount")); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("minAmount must be a number"))
		return
	}
	if filter.MaxAmount, err = parseAmount(q.Get("maxAmount")); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("maxAmount must be a number"))
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.CatalogSvc.List(filter))
}

func (h *grantHandlers) GetGrant(w http.ResponseWriter, r *http.Request) {
	grant, err := h.CatalogSvc.Get(chi.URLParam(r, "grantId"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, grant)
}

func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
