package models

import "time"

// Grant application statuses.
const (
	ApplicationSubmitted   = "submitted"
	ApplicationUnderReview = "under_review"
	ApplicationApproved    = "approved"
	ApplicationRejected    = "rejected"
)

// Grant categories.
const (
	CategoryEducation      = "education"
	CategoryHealthcare     = "healthcare"
	CategoryInfrastructure = "infrastructure"
	CategoryEnvironment    = "environment"
	CategoryOther          = "other"
)

// GrantApplication is one logical application. Copies of it may live in both
// the NGO backend and the local cache; ID identifies it across both.
type GrantApplication struct {
	ID                 string    `firestore:"id" json:"id"`
	IdempotencyKey     string    `firestore:"idempotencyKey,omitempty" json:"idempotencyKey,omitempty"`
	ApplicantName      string    `firestore:"applicantName" json:"applicantName"`
	ApplicantEmail     string    `firestore:"applicantEmail" json:"applicantEmail"`
	ApplicantPhone     string    `firestore:"applicantPhone,omitempty" json:"applicantPhone,omitempty"`
	OrganizationName   string    `firestore:"organizationName,omitempty" json:"organizationName,omitempty"`
	ProjectTitle       string    `firestore:"projectTitle" json:"projectTitle"`
	ProjectDescription string    `firestore:"projectDescription" json:"projectDescription"`
	RequestedAmount    float64   `firestore:"requestedAmount" json:"requestedAmount"`
	ProjectDuration    string    `firestore:"projectDuration,omitempty" json:"projectDuration,omitempty"`
	Category           string    `firestore:"category" json:"category"`
	Status             string    `firestore:"status" json:"status"`
	ReviewNotes        string    `firestore:"reviewNotes,omitempty" json:"reviewNotes,omitempty"`
	CreatedBy          string    `firestore:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt          time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ValidCategory reports whether c is one of the known grant categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryEducation, CategoryHealthcare, CategoryInfrastructure, CategoryEnvironment, CategoryOther:
		return true
	}
	return false
}

// ValidApplicationStatus reports whether s is one of the known statuses.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationSubmitted, ApplicationUnderReview, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}
