package models

// Registration status values.
const (
	RegistrationActive    = "active"
	RegistrationExpired   = "expired"
	RegistrationSuspended = "suspended"
)

// FcraRegistration is the organisation's FCRA registration. It is read-only
// configuration; ExpiryDate is a calendar date (YYYY-MM-DD).
type FcraRegistration struct {
	RegistrationNumber string `json:"registrationNumber"`
	ExpiryDate         string `json:"expiryDate"`
	Status             string `json:"status"`
}
