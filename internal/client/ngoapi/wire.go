package ngoapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/ngo-dashboard/internal/models"
	"github.com/GregMSThompson/ngo-dashboard/pkg/helpers"
)

// The backend returns raw MySQL rows (snake_case, numbers as strings) from
// its listing endpoints and accepts camelCase on writes. The wire types below
// accept both spellings so either generation of the backend decodes.

type donationsResponse struct {
	Success *bool          `json:"success"`
	Results []donationWire `json:"results"`
	Error   string         `json:"error"`
}

type applicationsResponse struct {
	Success      bool              `json:"success"`
	Applications []applicationWire `json:"applications"`
	Error        string            `json:"error"`
}

type writeResponse struct {
	Success bool       `json:"success"`
	ID      flexString `json:"id"`
	Message string     `json:"message"`
	Error   string     `json:"error"`
}

// updateResponse tolerates backends that echo the record instead of a
// success flag.
type updateResponse struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

type donationWire struct {
	ID                  flexString `json:"id"`
	DonorName           string     `json:"donorName"`
	DonorNameRow        string     `json:"donor_name"`
	DonorCountry        string     `json:"donorCountry"`
	DonorCountryRow     string     `json:"donor_country"`
	IsForeign           flexBool   `json:"isForeign"`
	IsForeignRow        flexBool   `json:"is_foreign"`
	RemittanceRef       string     `json:"remittanceRef"`
	RemittanceRefRow    string     `json:"remittance_ref"`
	Amount              flexFloat  `json:"amount"`
	Currency            string     `json:"currency"`
	ConvertedAmount     flexFloat  `json:"convertedAmount"`
	ConvertedAmountRow  flexFloat  `json:"converted_amount"`
	ConversionRate      flexFloat  `json:"conversionRate"`
	ConversionRateRow   flexFloat  `json:"conversion_rate"`
	PurposeTag          string     `json:"purposeTag"`
	PurposeTagRow       string     `json:"purpose_tag"`
	FIRC                string     `json:"FIRC"`
	FIRCRow             string     `json:"firc"`
	UsageRestriction    string     `json:"usageRestriction"`
	UsageRestrictionRow string     `json:"usage_restriction"`
	Notes               string     `json:"notes"`
	Attachments         []string   `json:"attachments"`
	CreatedBy           string     `json:"createdBy"`
	CreatedByRow        string     `json:"created_by"`
	CreatedAt           flexTime   `json:"createdAt"`
	CreatedAtRow        flexTime   `json:"created_at"`
	Status              string     `json:"status"`
	Type                string     `json:"type"`
}

func (w donationWire) toModel() models.Donation {
	return models.Donation{
		ID:               string(w.ID),
		DonorName:        helpers.FirstNonEmpty(w.DonorName, w.DonorNameRow),
		DonorCountry:     helpers.FirstNonEmpty(w.DonorCountry, w.DonorCountryRow),
		IsForeign:        bool(w.IsForeign) || bool(w.IsForeignRow),
		RemittanceRef:    helpers.FirstNonEmpty(w.RemittanceRef, w.RemittanceRefRow),
		Amount:           float64(w.Amount),
		Currency:         w.Currency,
		ConvertedAmount:  firstNonZero(w.ConvertedAmount, w.ConvertedAmountRow),
		ConversionRate:   firstNonZero(w.ConversionRate, w.ConversionRateRow),
		PurposeTag:       helpers.FirstNonEmpty(w.PurposeTag, w.PurposeTagRow),
		FIRC:             helpers.FirstNonEmpty(w.FIRC, w.FIRCRow),
		UsageRestriction: helpers.FirstNonEmpty(w.UsageRestriction, w.UsageRestrictionRow),
		Notes:            w.Notes,
		Attachments:      w.Attachments,
		CreatedBy:        helpers.FirstNonEmpty(w.CreatedBy, w.CreatedByRow),
		CreatedAt:        firstSet(w.CreatedAt, w.CreatedAtRow),
		Status:           w.Status,
		Type:             w.Type,
	}
}

type applicationWire struct {
	ID                    flexString `json:"id"`
	IdempotencyKey        string     `json:"idempotencyKey"`
	IdempotencyKeyRow     string     `json:"idempotency_key"`
	ApplicantName         string     `json:"applicantName"`
	ApplicantNameRow      string     `json:"applicant_name"`
	ApplicantEmail        string     `json:"applicantEmail"`
	ApplicantEmailRow     string     `json:"applicant_email"`
	ApplicantPhone        string     `json:"applicantPhone"`
	ApplicantPhoneRow     string     `json:"applicant_phone"`
	OrganizationName      string     `json:"organizationName"`
	OrganizationNameRow   string     `json:"organization_name"`
	ProjectTitle          string     `json:"projectTitle"`
	ProjectTitleRow       string     `json:"project_title"`
	ProjectDescription    string     `json:"projectDescription"`
	ProjectDescriptionRow string     `json:"project_description"`
	RequestedAmount       flexFloat  `json:"requestedAmount"`
	RequestedAmountRow    flexFloat  `json:"requested_amount"`
	ProjectDuration       string     `json:"projectDuration"`
	ProjectDurationRow    string     `json:"project_duration"`
	Category              string     `json:"category"`
	Status                string     `json:"status"`
	ReviewNotes           string     `json:"reviewNotes"`
	ReviewNotesRow        string     `json:"review_notes"`
	CreatedAt             flexTime   `json:"createdAt"`
	CreatedAtRow          flexTime   `json:"created_at"`
	UpdatedAt             flexTime   `json:"updatedAt"`
	UpdatedAtRow          flexTime   `json:"updated_at"`
}

func (w applicationWire) toModel() models.GrantApplication {
	return models.GrantApplication{
		ID:                 string(w.ID),
		IdempotencyKey:     helpers.FirstNonEmpty(w.IdempotencyKey, w.IdempotencyKeyRow),
		ApplicantName:      helpers.FirstNonEmpty(w.ApplicantName, w.ApplicantNameRow),
		ApplicantEmail:     helpers.FirstNonEmpty(w.ApplicantEmail, w.ApplicantEmailRow),
		ApplicantPhone:     helpers.FirstNonEmpty(w.ApplicantPhone, w.ApplicantPhoneRow),
		OrganizationName:   helpers.FirstNonEmpty(w.OrganizationName, w.OrganizationNameRow),
		ProjectTitle:       helpers.FirstNonEmpty(w.ProjectTitle, w.ProjectTitleRow),
		ProjectDescription: helpers.FirstNonEmpty(w.ProjectDescription, w.ProjectDescriptionRow),
		RequestedAmount:    firstNonZero(w.RequestedAmount, w.RequestedAmountRow),
		ProjectDuration:    helpers.FirstNonEmpty(w.ProjectDuration, w.ProjectDurationRow),
		Category:           w.Category,
		Status:             normalizeStatus(w.Status),
		ReviewNotes:        helpers.FirstNonEmpty(w.ReviewNotes, w.ReviewNotesRow),
		CreatedBy:          "database",
		CreatedAt:          firstSet(w.CreatedAt, w.CreatedAtRow),
		UpdatedAt:          firstSet(w.UpdatedAt, w.UpdatedAtRow),
	}
}

// normalizeStatus maps the UI spelling "under-review" onto the stored form.
func normalizeStatus(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

type applicationPayload struct {
	ApplicantName      string  `json:"applicantName"`
	ApplicantEmail     string  `json:"applicantEmail"`
	ApplicantPhone     string  `json:"applicantPhone,omitempty"`
	OrganizationName   string  `json:"organizationName,omitempty"`
	ProjectTitle       string  `json:"projectTitle"`
	ProjectDescription string  `json:"projectDescription"`
	RequestedAmount    float64 `json:"requestedAmount"`
	ProjectDuration    string  `json:"projectDuration,omitempty"`
	Category           string  `json:"category"`
	IdempotencyKey     string  `json:"idempotencyKey,omitempty"`
}

type statusPayload struct {
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
	ReviewNotes   string `json:"reviewNotes"`
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexFloat accepts a JSON number or a numeric string ("125000.00").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		if strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		*f = flexFloat(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexFloat(n)
	return nil
}

// flexBool accepts true/false, 0/1 and their string forms.
type flexBool bool

func (v *flexBool) UnmarshalJSON(b []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(b)), `"`) {
	case "true", "1":
		*v = true
	case "false", "0", "", "null":
		*v = false
	default:
		return &json.UnsupportedValueError{Str: string(b)}
	}
	return nil
}

// flexTime accepts RFC 3339 and MySQL DATETIME / DATE values.
type flexTime time.Time

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil || strings.TrimSpace(v) == "" {
		// null or non-string timestamps are treated as absent
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, v); err == nil {
			*t = flexTime(parsed)
			return nil
		}
	}
	return &time.ParseError{Layout: time.RFC3339, Value: v}
}

func firstNonZero(vals ...flexFloat) float64 {
	for _, v := range vals {
		if v != 0 {
			return float64(v)
		}
	}
	return 0
}

func firstSet(vals ...flexTime) time.Time {
	for _, v := range vals {
		if !time.Time(v).IsZero() {
			return time.Time(v)
		}
	}
	return time.Time{}
}
