package dto

import (
	"context"

	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

// GrantApplicationDraft is the payload a user submits from the application form.
type GrantApplicationDraft struct {
	ApplicantName      string  `json:"applicantName"`
	ApplicantEmail     string  `json:"applicantEmail"`
	ApplicantPhone     string  `json:"applicantPhone,omitempty"`
	OrganizationName   string  `json:"organizationName,omitempty"`
	ProjectTitle       string  `json:"projectTitle"`
	ProjectDescription string  `json:"projectDescription"`
	RequestedAmount    float64 `json:"requestedAmount"`
	ProjectDuration    string  `json:"projectDuration,omitempty"`
	Category           string  `json:"category"`
	CreatedBy          string  `json:"createdBy,omitempty"`
}

// Submission is a validated draft on its way to the stores.
type Submission struct {
	Draft          GrantApplicationDraft
	IdempotencyKey string
}

// FallbackFunc is the secondary submission path used when the backend write
// fails. It returns the record it persisted.
type FallbackFunc func(ctx context.Context, sub Submission) (*models.GrantApplication, error)

// RefreshFunc reloads a caller-owned view after a successful submission.
type RefreshFunc func(ctx context.Context)

// SubmitHooks lets callers customise the fallback and refresh steps of a
// submission. A nil Fallback means "keep a local copy only".
type SubmitHooks struct {
	Fallback FallbackFunc
	Refresh  []RefreshFunc
}

// ApplicationList is the merged view over the backend and the local cache.
type ApplicationList struct {
	Applications []models.GrantApplication `json:"applications"`
	Degraded     bool                      `json:"degraded"`
}

// ApplicationFilter narrows an application list. Empty fields match all.
type ApplicationFilter struct {
	Search   string
	Status   string
	Category string
}

// ApplicationStats are the header counters of the applications screen.
type ApplicationStats struct {
	Total          int     `json:"total"`
	UnderReview    int     `json:"underReview"`
	Approved       int     `json:"approved"`
	TotalRequested float64 `json:"totalRequested"`
}

// UpdateStatusRequest changes the review status of an application.
type UpdateStatusRequest struct {
	Status      string `json:"status"`
	ReviewNotes string `json:"reviewNotes,omitempty"`
}

// SubmitResponse is returned after a successful submission.
type SubmitResponse struct {
	Application  *models.GrantApplication  `json:"application"`
	Applications []models.GrantApplication `json:"applications,omitempty"`
}
