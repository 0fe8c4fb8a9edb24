package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/middleware"
	"github.com/GregMSThompson/ngo-dashboard/internal/response"
	"github.com/GregMSThompson/ngo-dashboard/pkg/logger"
)

type fcraHandlers struct {
	ResponseHandler response.ResponseHandler
	FcraSvc         FcraService
}

func NewFcraHandlers(deps *Deps) *fcraHandlers {
	return &fcraHandlers{
		ResponseHandler: deps.ResponseHandler,
		FcraSvc:         deps.FcraSvc,
	}
}

func (h *fcraHandlers) FcraRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.GetSummary)
	r.Get("/donations", h.ListDonations)
	r.Post("/donations", h.RecordDonation)
	r.Put("/donations/{donationId}", h.UpdateDonation)
	r.Get("/donations/foreign", h.ListForeignDonations)
	r.Get("/export.csv", h.ExportCSV)
	return r
}

func (h *fcraHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.FcraSvc.Summary(r.Context()))
}

func (h *fcraHandlers) ListDonations(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.FcraSvc.LoadDonations(r.Context()))
}

func (h *fcraHandlers) ListForeignDonations(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.FcraSvc.ForeignDonations(r.Context()))
}

func (h *fcraHandlers) RecordDonation(w http.ResponseWriter, r *http.Request) {
	var draft dto.DonationDraft
	if err := decodeJSON(r, &draft); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if uid := middleware.UID(r.Context()); uid != "" {
		draft.CreatedBy = uid
	}
	d, err := h.FcraSvc.RecordDonation(r.Context(), draft)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, d)
}

func (h *fcraHandlers) UpdateDonation(w http.ResponseWriter, r *http.Request) {
	var draft dto.DonationDraft
	if err := decodeJSON(r, &draft); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if uid := middleware.UID(r.Context()); uid != "" {
		draft.CreatedBy = uid
	}
	d, err := h.FcraSvc.UpdateDonation(r.Context(), chi.URLParam(r, "donationId"), draft)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, d)
}

func (h *fcraHandlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("fcra-foreign-donations-%s.csv", time.Now().Format("2006-01-02"))
	err := response.WriteCSV(w, filename, func(out io.Writer) error {
		return h.FcraSvc.ExportForeignDonations(r.Context(), out)
	})
	if err != nil {
		logger.FromContext(r.Context()).Error("csv export failed", "error", err)
	}
}
