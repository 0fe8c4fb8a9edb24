package models

import "time"

// Donation status values.
const (
	DonationStatusCompleted = "completed"
	DonationStatusPending   = "pending"
	DonationStatusFailed    = "failed"
)

// Donation types.
const (
	DonationTypeOneTime   = "one-time"
	DonationTypeRecurring = "recurring"
)

// Donation is a contribution record as returned by the NGO backend.
// A donation is foreign iff IsForeign is set; a foreign donation is
// FCRA compliant iff FIRC is non-empty.
type Donation struct {
	ID               string    `json:"id"`
	DonorName        string    `json:"donorName"`
	DonorCountry     string    `json:"donorCountry,omitempty"`
	IsForeign        bool      `json:"isForeign"`
	RemittanceRef    string    `json:"remittanceRef,omitempty"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	ConvertedAmount  float64   `json:"convertedAmount"` // INR
	ConversionRate   float64   `json:"conversionRate,omitempty"`
	PurposeTag       string    `json:"purposeTag"`
	FIRC             string    `json:"FIRC,omitempty"`
	UsageRestriction string    `json:"usageRestriction,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Attachments      []string  `json:"attachments,omitempty"`
	CreatedBy        string    `json:"createdBy,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	Status           string    `json:"status"`
	Type             string    `json:"type"`
}

// Compliant reports whether a foreign donation carries its FIRC reference.
func (d Donation) Compliant() bool {
	return d.IsForeign && d.FIRC != ""
}
