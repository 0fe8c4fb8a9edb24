package dto

import (
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

// ExpiryBand classifies the days remaining on an FCRA registration.
type ExpiryBand string

const (
	ExpiryOK       ExpiryBand = "ok"
	ExpiryWarning  ExpiryBand = "warning"
	ExpiryCritical ExpiryBand = "critical"
)

// Compliance labels shown on the FIRC card.
const (
	ComplianceAllCompliant   = "All compliant"
	ComplianceActionRequired = "Action required"
)

// DonationList is the result of a donation load. Degraded is set when the
// backend could not be reached and Donations is an empty stand-in.
type DonationList struct {
	Donations []models.Donation `json:"donations"`
	Degraded  bool              `json:"degraded"`
}

// FcraSummary is the compliance dashboard view.
type FcraSummary struct {
	Registration       models.FcraRegistration `json:"registration"`
	DaysRemaining      int                     `json:"daysRemaining"`
	ExpiryBand         ExpiryBand              `json:"expiryBand"`
	Expired            bool                    `json:"expired"`
	TotalDonations     int                     `json:"totalDonations"`
	ForeignDonations   int                     `json:"foreignDonations"`
	MissingFIRC        int                     `json:"missingFirc"`
	CompliantCount     int                     `json:"compliantCount"`
	ComplianceStatus   string                  `json:"complianceStatus"`
	ComplianceScore    float64                 `json:"complianceScore"` // percent, 0-100
	ForeignReceivedINR float64                 `json:"foreignReceivedInr"`
	Degraded           bool                    `json:"degraded"`
}

// DonationDraft is the input for recording a new donation.
type DonationDraft struct {
	DonorName        string   `json:"donorName"`
	DonorCountry     string   `json:"donorCountry,omitempty"`
	IsForeign        bool     `json:"isForeign"`
	RemittanceRef    string   `json:"remittanceRef,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	Amount           float64  `json:"amount"`
	ConversionRate   *float64 `json:"conversionRate,omitempty"`
	FIRC             string   `json:"FIRC,omitempty"`
	PurposeTag       string   `json:"purposeTag"`
	UsageRestriction string   `json:"usageRestriction,omitempty"`
	Notes            string   `json:"notes,omitempty"`
	Attachments      []string `json:"attachments,omitempty"`
	CreatedBy        string   `json:"createdBy,omitempty"`
}
