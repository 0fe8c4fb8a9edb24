package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
	"github.com/GregMSThompson/ngo-dashboard/internal/response"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type FcraService interface {
	Summary(ctx context.Context) dto.FcraSummary
	LoadDonations(ctx context.Context) dto.DonationList
	ForeignDonations(ctx context.Context) dto.DonationList
	ExportForeignDonations(ctx context.Context, w io.Writer) error
	RecordDonation(ctx context.Context, draft dto.DonationDraft) (*models.Donation, error)
	UpdateDonation(ctx context.Context, id string, draft dto.DonationDraft) (*models.Donation, error)
}

type GrantApplicationService interface {
	Search(ctx context.Context, f dto.ApplicationFilter) dto.ApplicationList
	Submit(ctx context.Context, draft dto.GrantApplicationDraft, hooks dto.SubmitHooks) (dto.SubmitResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (*models.GrantApplication, error)
}

type CatalogService interface {
	List(f dto.GrantFilter) []models.Grant
	Get(id string) (*models.Grant, error)
}

type OverviewService interface {
	Overview(ctx context.Context) (dto.Overview, error)
}

type Deps struct {
	Log                 *slog.Logger
	ResponseHandler     response.ResponseHandler
	FcraSvc             FcraService
	GrantApplicationSvc GrantApplicationService
	CatalogSvc          CatalogService
	OverviewSvc         OverviewService
}

// decodeJSON reads a JSON body into v, reporting malformed input as a
// validation failure.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errs.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}
