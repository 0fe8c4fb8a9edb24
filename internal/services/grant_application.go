package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
	"github.com/GregMSThompson/ngo-dashboard/pkg/helpers"
	"github.com/GregMSThompson/ngo-dashboard/pkg/logger"
)

// SubmitFailedMessage is the user-facing message when no store accepted a
// submission.
const SubmitFailedMessage = "Failed to submit application. Please try again."

// anonymousUser stands in for CreatedBy when no signed-in user is known.
const anonymousUser = "anonymous"

// applicationBackend is the remote store for grant applications.
type applicationBackend interface {
	ListApplications(ctx context.Context) ([]models.GrantApplication, error)
	CreateApplication(ctx context.Context, sub dto.Submission) (string, error)
	UpdateGrantStatus(ctx context.Context, id, status, notes string) (bool, error)
}

// applicationCache is the local persisted slot of applications.
type applicationCache interface {
	Load(ctx context.Context) ([]models.GrantApplication, error)
	Append(ctx context.Context, app models.GrantApplication) error
	Replace(ctx context.Context, app models.GrantApplication) (bool, error)
}

type grantApplicationService struct {
	backend applicationBackend
	cache   applicationCache

	clockNow func() time.Time
	newID    func() string
}

func NewGrantApplicationService(backend applicationBackend, cache applicationCache) *grantApplicationService {
	return &grantApplicationService{
		backend:  backend,
		cache:    cache,
		clockNow: time.Now,
		newID:    uuid.NewString,
	}
}

// Submit validates the draft, writes it to the backend and mirrors it into
// the local cache. When the backend write fails the fallback hook persists
// it instead. On success the list is reloaded before the refresh hooks run.
func (s *grantApplicationService) Submit(ctx context.Context, draft dto.GrantApplicationDraft, hooks dto.SubmitHooks) (dto.SubmitResponse, error) {
	log := logger.FromContext(ctx)

	draft = normalizeDraft(draft)
	if err := validateApplicationDraft(draft); err != nil {
		return dto.SubmitResponse{}, err
	}
	sub := dto.Submission{Draft: draft, IdempotencyKey: s.newID()}

	var app *models.GrantApplication
	serverID, err := s.backend.CreateApplication(ctx, sub)
	if err == nil {
		app = s.newRecord(sub, serverID)
		if cacheErr := s.cache.Append(ctx, *app); cacheErr != nil {
			log.Warn("application saved remotely but not cached", "applicationId", app.ID, "err", cacheErr)
		}
	} else {
		log.Warn("backend submission failed, using fallback", "err", err)

		fallback := hooks.Fallback
		if fallback == nil {
			fallback = s.LocalFallback
		}
		var fbErr error
		app, fbErr = fallback(ctx, sub)
		if fbErr == nil && app == nil {
			fbErr = errors.New("fallback returned no application")
		}
		if fbErr != nil {
			log.Error("application submission failed", "err", fbErr)
			return dto.SubmitResponse{}, errs.NewSubmissionError(SubmitFailedMessage, errors.Join(err, fbErr))
		}
	}

	list := s.List(ctx)
	for _, refresh := range hooks.Refresh {
		refresh(ctx)
	}

	log.Info("application submitted", "applicationId", app.ID, "idempotencyKey", sub.IdempotencyKey)
	return dto.SubmitResponse{Application: app, Applications: list.Applications}, nil
}

// LocalFallback keeps a locally identified copy of the submission in the
// cache only.
func (s *grantApplicationService) LocalFallback(ctx context.Context, sub dto.Submission) (*models.GrantApplication, error) {
	app := s.newRecord(sub, "")
	if err := s.cache.Append(ctx, *app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *grantApplicationService) newRecord(sub dto.Submission, id string) *models.GrantApplication {
	if id == "" {
		id = s.newID()
	}
	d := sub.Draft
	return &models.GrantApplication{
		ID:                 id,
		IdempotencyKey:     sub.IdempotencyKey,
		ApplicantName:      d.ApplicantName,
		ApplicantEmail:     d.ApplicantEmail,
		ApplicantPhone:     d.ApplicantPhone,
		OrganizationName:   d.OrganizationName,
		ProjectTitle:       d.ProjectTitle,
		ProjectDescription: d.ProjectDescription,
		RequestedAmount:    d.RequestedAmount,
		ProjectDuration:    d.ProjectDuration,
		Category:           d.Category,
		Status:             models.ApplicationSubmitted,
		CreatedBy:          helpers.FirstNonEmpty(d.CreatedBy, anonymousUser),
		CreatedAt:          s.clockNow(),
	}
}

// List merges the backend and cached applications. It never fails; when one
// side is unavailable the other is returned with Degraded set.
func (s *grantApplicationService) List(ctx context.Context) dto.ApplicationList {
	log := logger.FromContext(ctx)

	remote, remoteErr := s.backend.ListApplications(ctx)
	if remoteErr != nil {
		log.Warn("backend application listing failed", "err", remoteErr)
	}
	local, cacheErr := s.cache.Load(ctx)
	if cacheErr != nil {
		log.Warn("application cache unavailable", "err", cacheErr)
	}

	return dto.ApplicationList{
		Applications: MergeApplications(remote, local),
		Degraded:     remoteErr != nil || cacheErr != nil,
	}
}

// Search lists applications and applies f.
func (s *grantApplicationService) Search(ctx context.Context, f dto.ApplicationFilter) dto.ApplicationList {
	list := s.List(ctx)
	list.Applications = FilterApplications(list.Applications, f)
	return list
}

// UpdateStatus records a review decision on the backend and on the cached
// copy when there is one. A locally held application is updated even when the
// backend does not know it; NotFound means neither store has the id.
func (s *grantApplicationService) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (*models.GrantApplication, error) {
	log := logger.FromContext(ctx)

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errs.NewValidationError("applicationId is required")
	}
	status := normalizeStatus(req.Status)
	if !models.ValidApplicationStatus(status) {
		return nil, errs.NewValidationError("invalid status: " + req.Status)
	}

	remoteOK, remoteErr := s.backend.UpdateGrantStatus(ctx, id, status, req.ReviewNotes)
	if remoteErr != nil {
		log.Warn("backend status update failed, trying cached copy", "applicationId", id, "err", remoteErr)
	}

	now := s.clockNow()
	updated, cacheErr := s.updateCachedStatus(ctx, id, status, req.ReviewNotes, now)
	if cacheErr != nil {
		log.Warn("cached copy not updated", "applicationId", id, "err", cacheErr)
	}

	switch {
	case updated != nil:
	case remoteOK:
		updated = &models.GrantApplication{ID: id, Status: status, ReviewNotes: req.ReviewNotes, UpdatedAt: now}
	case remoteErr != nil:
		var ext *errs.ExternalServiceError
		if errors.As(remoteErr, &ext) {
			return nil, remoteErr
		}
		return nil, errs.NewExternalServiceError("ngo-backend", "status update failed", true, remoteErr)
	case cacheErr != nil:
		return nil, cacheErr
	default:
		return nil, errs.NewNotFoundError("application not found")
	}

	log.Info("application status updated", "applicationId", id, "status", status, "remote", remoteOK)
	return updated, nil
}

// updateCachedStatus replaces the cached copy of id. It returns nil, nil when
// the cache holds no such application.
func (s *grantApplicationService) updateCachedStatus(ctx context.Context, id, status, notes string, now time.Time) (*models.GrantApplication, error) {
	cached, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, app := range cached {
		if app.ID != id {
			continue
		}
		app.Status = status
		app.ReviewNotes = notes
		app.UpdatedAt = now
		if _, err := s.cache.Replace(ctx, app); err != nil {
			return nil, err
		}
		return &app, nil
	}
	return nil, nil
}

// FilterApplications applies the search box and dropdown filters of the
// applications screen.
func FilterApplications(apps []models.GrantApplication, f dto.ApplicationFilter) []models.GrantApplication {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	status := normalizeStatus(f.Status)

	out := make([]models.GrantApplication, 0, len(apps))
	for _, app := range apps {
		if search != "" &&
			!strings.Contains(strings.ToLower(app.ProjectTitle), search) &&
			!strings.Contains(strings.ToLower(app.ApplicantName), search) &&
			!strings.Contains(strings.ToLower(app.OrganizationName), search) {
			continue
		}
		if status != "" && app.Status != status {
			continue
		}
		if f.Category != "" && !strings.EqualFold(app.Category, f.Category) {
			continue
		}
		out = append(out, app)
	}
	return out
}

func SummarizeApplications(apps []models.GrantApplication) dto.ApplicationStats {
	stats := dto.ApplicationStats{Total: len(apps)}
	for _, app := range apps {
		switch app.Status {
		case models.ApplicationUnderReview:
			stats.UnderReview++
		case models.ApplicationApproved:
			stats.Approved++
		}
		stats.TotalRequested += app.RequestedAmount
	}
	return stats
}

func normalizeDraft(d dto.GrantApplicationDraft) dto.GrantApplicationDraft {
	d.ApplicantName = strings.TrimSpace(d.ApplicantName)
	d.ApplicantEmail = strings.TrimSpace(d.ApplicantEmail)
	d.ApplicantPhone = strings.TrimSpace(d.ApplicantPhone)
	d.OrganizationName = strings.TrimSpace(d.OrganizationName)
	d.ProjectTitle = strings.TrimSpace(d.ProjectTitle)
	d.ProjectDescription = strings.TrimSpace(d.ProjectDescription)
	d.Category = strings.ToLower(strings.TrimSpace(d.Category))
	if d.Category == "" {
		d.Category = models.CategoryEducation
	}
	return d
}

func validateApplicationDraft(d dto.GrantApplicationDraft) error {
	switch {
	case d.ApplicantName == "":
		return errs.NewValidationError("applicantName is required")
	case d.ApplicantEmail == "":
		return errs.NewValidationError("applicantEmail is required")
	case d.ProjectTitle == "":
		return errs.NewValidationError("projectTitle is required")
	case d.ProjectDescription == "":
		return errs.NewValidationError("projectDescription is required")
	case d.RequestedAmount <= 0:
		return errs.NewValidationError("requestedAmount must be greater than zero")
	case !models.ValidCategory(d.Category):
		return errs.NewValidationError("invalid category: " + d.Category)
	}
	if _, err := mail.ParseAddress(d.ApplicantEmail); err != nil {
		return errs.NewValidationError("applicantEmail is not a valid address")
	}
	return nil
}

func normalizeStatus(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}
