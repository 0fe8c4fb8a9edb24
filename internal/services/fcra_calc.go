package services

import (
	"math"
	"time"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

const expiryDateLayout = "2006-01-02"

// Expiry band thresholds, in days remaining.
const (
	expiryOKAfter      = 90
	expiryWarningAfter = 30
)

// ForeignDonations returns the foreign donations in their original order.
func ForeignDonations(donations []models.Donation) []models.Donation {
	out := make([]models.Donation, 0, len(donations))
	for _, d := range donations {
		if d.IsForeign {
			out = append(out, d)
		}
	}
	return out
}

// MissingCompliance returns the foreign donations that have no FIRC reference.
func MissingCompliance(foreign []models.Donation) []models.Donation {
	out := make([]models.Donation, 0)
	for _, d := range foreign {
		if d.FIRC == "" {
			out = append(out, d)
		}
	}
	return out
}

// CompliantDonations returns the foreign donations that carry a FIRC reference.
func CompliantDonations(foreign []models.Donation) []models.Donation {
	out := make([]models.Donation, 0, len(foreign))
	for _, d := range foreign {
		if d.FIRC != "" {
			out = append(out, d)
		}
	}
	return out
}

// ParseExpiryDate reads a registration expiry as a UTC calendar date.
func ParseExpiryDate(s string) (time.Time, error) {
	return time.Parse(expiryDateLayout, s)
}

// DaysUntilExpiry is ceil((expiry - now) / 24h). It is zero or negative once
// the expiry has passed.
func DaysUntilExpiry(expiry, now time.Time) int {
	days := math.Ceil(float64(expiry.Sub(now)) / float64(24*time.Hour))
	return int(days)
}

func ClassifyExpiry(days int) dto.ExpiryBand {
	switch {
	case days > expiryOKAfter:
		return dto.ExpiryOK
	case days > expiryWarningAfter:
		return dto.ExpiryWarning
	default:
		return dto.ExpiryCritical
	}
}

// BuildFcraSummary derives the compliance dashboard from the registration and
// the loaded donations. An unreadable expiry date is reported as expired.
func BuildFcraSummary(reg models.FcraRegistration, donations []models.Donation, now time.Time, degraded bool) dto.FcraSummary {
	foreign := ForeignDonations(donations)
	missing := MissingCompliance(foreign)

	var received float64
	for _, d := range foreign {
		received += d.ConvertedAmount
	}

	days := 0
	if expiry, err := ParseExpiryDate(reg.ExpiryDate); err == nil {
		days = DaysUntilExpiry(expiry, now)
	}

	status := dto.ComplianceAllCompliant
	if len(missing) > 0 {
		status = dto.ComplianceActionRequired
	}

	compliant := len(foreign) - len(missing)
	score := float64(compliant) / float64(max(len(foreign), 1)) * 100

	return dto.FcraSummary{
		Registration:       reg,
		DaysRemaining:      days,
		ExpiryBand:         ClassifyExpiry(days),
		Expired:            days <= 0,
		TotalDonations:     len(donations),
		ForeignDonations:   len(foreign),
		MissingFIRC:        len(missing),
		CompliantCount:     compliant,
		ComplianceStatus:   status,
		ComplianceScore:    math.Round(score*10) / 10,
		ForeignReceivedINR: received,
		Degraded:           degraded,
	}
}
