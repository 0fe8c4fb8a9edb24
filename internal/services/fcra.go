package services

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
	"github.com/GregMSThompson/ngo-dashboard/pkg/helpers"
	"github.com/GregMSThompson/ngo-dashboard/pkg/logger"
)

// Defaults applied to foreign donations recorded without explicit values.
const (
	defaultForeignCurrency = "USD"
	defaultConversionRate  = 83.5
)

// donationBackend is the remote store for donations.
type donationBackend interface {
	ListDonations(ctx context.Context) ([]models.Donation, error)
	CreateDonation(ctx context.Context, d models.Donation) (string, error)
	UpdateDonation(ctx context.Context, d models.Donation) error
}

type fcraService struct {
	backend      donationBackend
	registration models.FcraRegistration

	// expiryNow is the countdown reference; clockNow stamps new records.
	expiryNow func() time.Time
	clockNow  func() time.Time
	newID     func() string
}

// NewFcraService builds the FCRA service. expiryNow supplies the reference
// time for the registration countdown, usually an expiry clock's Now.
func NewFcraService(backend donationBackend, registration models.FcraRegistration, expiryNow func() time.Time) *fcraService {
	if expiryNow == nil {
		expiryNow = time.Now
	}
	return &fcraService{
		backend:      backend,
		registration: registration,
		expiryNow:    expiryNow,
		clockNow:     time.Now,
		newID:        uuid.NewString,
	}
}

func (s *fcraService) Registration() models.FcraRegistration {
	return s.registration
}

// LoadDonations fetches and normalises the donation collection. It never
// fails: an unreachable backend yields an empty, degraded list.
func (s *fcraService) LoadDonations(ctx context.Context) dto.DonationList {
	log := logger.FromContext(ctx)

	raw, err := s.backend.ListDonations(ctx)
	if err != nil {
		log.Warn("donation load failed, serving empty list", "err", err)
		return dto.DonationList{Donations: []models.Donation{}, Degraded: true}
	}

	out := make([]models.Donation, 0, len(raw))
	for _, d := range raw {
		if d.ID == "" {
			d.ID = s.newID()
		}
		if d.Status == "" {
			d.Status = models.DonationStatusCompleted
		}
		if d.Type == "" {
			d.Type = models.DonationTypeOneTime
		}
		out = append(out, d)
	}
	log.Debug("donations loaded", "count", len(out))
	return dto.DonationList{Donations: out}
}

// ForeignDonations loads donations and keeps only the foreign ones.
func (s *fcraService) ForeignDonations(ctx context.Context) dto.DonationList {
	list := s.LoadDonations(ctx)
	list.Donations = ForeignDonations(list.Donations)
	return list
}

// ExportForeignDonations writes the foreign donations as CSV.
func (s *fcraService) ExportForeignDonations(ctx context.Context, w io.Writer) error {
	list := s.ForeignDonations(ctx)
	if list.Degraded {
		logger.FromContext(ctx).Warn("exporting foreign donations from a degraded load")
	}
	return WriteForeignDonationsCSV(w, list.Donations)
}

func (s *fcraService) Summary(ctx context.Context) dto.FcraSummary {
	list := s.LoadDonations(ctx)
	return BuildFcraSummary(s.registration, list.Donations, s.expiryNow(), list.Degraded)
}

// RecordDonation validates a draft and writes it to the backend.
func (s *fcraService) RecordDonation(ctx context.Context, draft dto.DonationDraft) (*models.Donation, error) {
	if err := validateDonationDraft(draft); err != nil {
		return nil, err
	}

	d := s.buildDonation(draft)
	d.CreatedAt = s.clockNow()
	d.Status = models.DonationStatusCompleted
	d.Type = models.DonationTypeOneTime

	id, err := s.backend.CreateDonation(ctx, d)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = s.newID()
	}
	d.ID = id

	logger.FromContext(ctx).Info("donation recorded", "donationId", d.ID, "foreign", d.IsForeign)
	return &d, nil
}

// UpdateDonation replaces donation id with the edited draft. The stored
// creation time, status and type carry over to the replacement.
func (s *fcraService) UpdateDonation(ctx context.Context, id string, draft dto.DonationDraft) (*models.Donation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errs.NewValidationError("donationId is required")
	}
	if err := validateDonationDraft(draft); err != nil {
		return nil, err
	}

	existing, err := s.backend.ListDonations(ctx)
	if err != nil {
		return nil, err
	}
	var current *models.Donation
	for i := range existing {
		if existing[i].ID == id {
			current = &existing[i]
			break
		}
	}
	if current == nil {
		return nil, errs.NewNotFoundError("donation not found")
	}

	d := s.buildDonation(draft)
	d.ID = id
	d.CreatedBy = helpers.FirstNonEmpty(strings.TrimSpace(draft.CreatedBy), current.CreatedBy, anonymousUser)
	d.CreatedAt = current.CreatedAt
	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.clockNow()
	}
	d.Status = helpers.FirstNonEmpty(current.Status, models.DonationStatusCompleted)
	d.Type = helpers.FirstNonEmpty(current.Type, models.DonationTypeOneTime)

	if err := s.backend.UpdateDonation(ctx, d); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("donation updated", "donationId", d.ID, "foreign", d.IsForeign)
	return &d, nil
}

// buildDonation applies the currency rules to a validated draft.
func (s *fcraService) buildDonation(draft dto.DonationDraft) models.Donation {
	d := models.Donation{
		DonorName:        strings.TrimSpace(draft.DonorName),
		IsForeign:        draft.IsForeign,
		Amount:           draft.Amount,
		PurposeTag:       strings.TrimSpace(draft.PurposeTag),
		UsageRestriction: draft.UsageRestriction,
		Notes:            draft.Notes,
		Attachments:      draft.Attachments,
		CreatedBy:        helpers.FirstNonEmpty(strings.TrimSpace(draft.CreatedBy), anonymousUser),
	}

	if draft.IsForeign {
		d.DonorCountry = draft.DonorCountry
		d.RemittanceRef = draft.RemittanceRef
		d.FIRC = strings.TrimSpace(draft.FIRC)
		d.Currency = helpers.FirstNonEmpty(strings.ToUpper(draft.Currency), defaultForeignCurrency)
		d.ConversionRate = helpers.ValueOr(draft.ConversionRate, defaultConversionRate)
	} else {
		d.Currency = "INR"
		d.ConversionRate = 1
	}
	d.ConvertedAmount = math.Round(d.Amount*d.ConversionRate*100) / 100
	return d
}

func validateDonationDraft(draft dto.DonationDraft) error {
	if strings.TrimSpace(draft.DonorName) == "" {
		return errs.NewValidationError("donorName is required")
	}
	if strings.TrimSpace(draft.PurposeTag) == "" {
		return errs.NewValidationError("purposeTag is required")
	}
	if draft.Amount <= 0 {
		return errs.NewValidationError("amount must be greater than zero")
	}
	if draft.IsForeign && draft.ConversionRate != nil && *draft.ConversionRate <= 0 {
		return errs.NewValidationError("conversionRate must be greater than zero")
	}
	return nil
}
