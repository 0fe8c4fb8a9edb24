package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
	"github.com/GregMSThompson/ngo-dashboard/pkg/helpers"
)

// --- fakes ---

type fakeDonationBackend struct {
	donations []models.Donation
	listErr   error
	createID  string
	createErr error
	created   []models.Donation
	updateErr error
	updated   []models.Donation
}

func (f *fakeDonationBackend) ListDonations(ctx context.Context) ([]models.Donation, error) {
	return f.donations, f.listErr
}

func (f *fakeDonationBackend) CreateDonation(ctx context.Context, d models.Donation) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, d)
	return f.createID, nil
}

func (f *fakeDonationBackend) UpdateDonation(ctx context.Context, d models.Donation) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, d)
	return nil
}

var testRegistration = models.FcraRegistration{
	RegistrationNumber: "FCRA/2023/NGO/12345",
	ExpiryDate:         "2028-03-15",
	Status:             models.RegistrationActive,
}

func newTestFcraService(backend donationBackend, now time.Time) *fcraService {
	svc := NewFcraService(backend, testRegistration, func() time.Time { return now })
	svc.clockNow = func() time.Time { return now }
	svc.newID = func() string { return "generated-id" }
	return svc
}

// --- tests ---

func TestLoadDonationsNormalises(t *testing.T) {
	backend := &fakeDonationBackend{donations: []models.Donation{
		{DonorName: "No id"},
		{ID: "7", DonorName: "Explicit", Status: models.DonationStatusPending, Type: models.DonationTypeRecurring},
	}}
	svc := newTestFcraService(backend, time.Now())

	got := svc.LoadDonations(helpers.TestCtx())

	if got.Degraded {
		t.Fatal("expected healthy load")
	}
	if len(got.Donations) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(got.Donations))
	}
	first := got.Donations[0]
	if first.ID != "generated-id" || first.Status != models.DonationStatusCompleted || first.Type != models.DonationTypeOneTime {
		t.Fatalf("expected defaults on first donation, got %+v", first)
	}
	second := got.Donations[1]
	if second.ID != "7" || second.Status != models.DonationStatusPending || second.Type != models.DonationTypeRecurring {
		t.Fatalf("expected explicit fields kept, got %+v", second)
	}
}

func TestLoadDonationsBackendFailureIsDegraded(t *testing.T) {
	backend := &fakeDonationBackend{listErr: errs.NewExternalServiceError("ngo-backend", "request failed", true, errors.New("dial tcp"))}
	svc := newTestFcraService(backend, time.Now())

	got := svc.LoadDonations(helpers.TestCtx())

	if !got.Degraded {
		t.Fatal("expected degraded result")
	}
	if got.Donations == nil || len(got.Donations) != 0 {
		t.Fatalf("expected empty donations, got %#v", got.Donations)
	}
}

func TestSummaryDashboardScenario(t *testing.T) {
	backend := &fakeDonationBackend{donations: []models.Donation{
		{ID: "1", DonorName: "Global Aid", IsForeign: true, FIRC: "FIRC-001", ConvertedAmount: 83500},
		{ID: "2", DonorName: "World Trust", IsForeign: true, ConvertedAmount: 41750},
	}}
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	svc := newTestFcraService(backend, now)

	got := svc.Summary(helpers.TestCtx())

	if got.ForeignDonations != 2 {
		t.Fatalf("expected Foreign donations: 2, got %d", got.ForeignDonations)
	}
	if got.MissingFIRC != 1 {
		t.Fatalf("expected Missing FIRC: 1, got %d", got.MissingFIRC)
	}
	if got.ComplianceStatus != "Action required" {
		t.Fatalf("expected Action required, got %q", got.ComplianceStatus)
	}
	if got.DaysRemaining != 1096 || got.ExpiryBand != dto.ExpiryOK {
		t.Fatalf("unexpected countdown %d %q", got.DaysRemaining, got.ExpiryBand)
	}
}

func TestForeignDonationsServiceFilters(t *testing.T) {
	backend := &fakeDonationBackend{donations: []models.Donation{
		{ID: "1", IsForeign: true},
		{ID: "2"},
	}}
	svc := newTestFcraService(backend, time.Now())

	got := svc.ForeignDonations(helpers.TestCtx())
	if len(got.Donations) != 1 || got.Donations[0].ID != "1" {
		t.Fatalf("expected only the foreign donation, got %+v", got.Donations)
	}
}

func TestRecordDonationForeignDefaults(t *testing.T) {
	backend := &fakeDonationBackend{createID: "55"}
	now := time.Date(2025, time.April, 2, 12, 0, 0, 0, time.UTC)
	svc := newTestFcraService(backend, now)

	got, err := svc.RecordDonation(helpers.TestCtx(), dto.DonationDraft{
		DonorName:    " Global Aid ",
		DonorCountry: "US",
		IsForeign:    true,
		Amount:       1000,
		FIRC:         "FIRC-9",
		PurposeTag:   "Education",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ID != "55" || got.DonorName != "Global Aid" {
		t.Fatalf("unexpected donation %+v", got)
	}
	if got.Currency != "USD" || got.ConversionRate != 83.5 || got.ConvertedAmount != 83500 {
		t.Fatalf("expected default conversion, got %+v", got)
	}
	if !got.CreatedAt.Equal(now) || got.Status != models.DonationStatusCompleted {
		t.Fatalf("unexpected bookkeeping fields %+v", got)
	}
	if len(backend.created) != 1 || backend.created[0].FIRC != "FIRC-9" {
		t.Fatalf("expected one backend write with FIRC, got %+v", backend.created)
	}
}

func TestRecordDonationDomesticDropsForeignFields(t *testing.T) {
	backend := &fakeDonationBackend{}
	svc := newTestFcraService(backend, time.Now())

	got, err := svc.RecordDonation(helpers.TestCtx(), dto.DonationDraft{
		DonorName:      "Local Trust",
		DonorCountry:   "IN",
		Amount:         5000,
		Currency:       "USD",
		ConversionRate: helpers.Ptr(80.0),
		FIRC:           "ignored",
		PurposeTag:     "Health",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Currency != "INR" || got.ConversionRate != 1 || got.ConvertedAmount != 5000 {
		t.Fatalf("expected INR at par, got %+v", got)
	}
	if got.FIRC != "" || got.DonorCountry != "" {
		t.Fatalf("expected foreign fields dropped, got %+v", got)
	}
	if got.ID != "generated-id" {
		t.Fatalf("expected generated id when backend returns none, got %q", got.ID)
	}
}

func TestRecordDonationValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft dto.DonationDraft
	}{
		{"missing donor", dto.DonationDraft{Amount: 1, PurposeTag: "x"}},
		{"missing purpose", dto.DonationDraft{DonorName: "a", Amount: 1}},
		{"zero amount", dto.DonationDraft{DonorName: "a", PurposeTag: "x"}},
		{"negative rate", dto.DonationDraft{DonorName: "a", PurposeTag: "x", Amount: 1, IsForeign: true, ConversionRate: helpers.Ptr(-1.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeDonationBackend{}
			svc := newTestFcraService(backend, time.Now())

			_, err := svc.RecordDonation(helpers.TestCtx(), tt.draft)
			var vErr *errs.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(backend.created) != 0 {
				t.Fatal("expected no backend write")
			}
		})
	}
}

func TestRecordDonationBackendError(t *testing.T) {
	backend := &fakeDonationBackend{createErr: errs.NewExternalServiceError("ngo-backend", "down", true, nil)}
	svc := newTestFcraService(backend, time.Now())

	_, err := svc.RecordDonation(helpers.TestCtx(), dto.DonationDraft{DonorName: "a", PurposeTag: "x", Amount: 1})
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
}

func TestRecordDonationDefaultsCreatedBy(t *testing.T) {
	backend := &fakeDonationBackend{createID: "12"}
	svc := newTestFcraService(backend, time.Now())

	got, err := svc.RecordDonation(helpers.TestCtx(), dto.DonationDraft{DonorName: "a", PurposeTag: "x", Amount: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CreatedBy != anonymousUser || backend.created[0].CreatedBy != anonymousUser {
		t.Fatalf("expected anonymous creator, got %q / %q", got.CreatedBy, backend.created[0].CreatedBy)
	}
}

func TestUpdateDonationReplacesRecord(t *testing.T) {
	created := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	backend := &fakeDonationBackend{donations: []models.Donation{
		{ID: "7", DonorName: "Global Aid", IsForeign: true, Amount: 1000, Currency: "USD", CreatedBy: "uid-1",
			CreatedAt: created, Status: models.DonationStatusCompleted, Type: models.DonationTypeRecurring},
	}}
	svc := newTestFcraService(backend, now)

	got, err := svc.UpdateDonation(helpers.TestCtx(), "7", dto.DonationDraft{
		DonorName:      "Global Aid Foundation",
		IsForeign:      true,
		Amount:         2000,
		Currency:       "eur",
		ConversionRate: helpers.Ptr(90.0),
		FIRC:           " FIRC-2024-7 ",
		PurposeTag:     "Education",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ID != "7" || got.FIRC != "FIRC-2024-7" || got.Currency != "EUR" || got.ConvertedAmount != 180000 {
		t.Fatalf("unexpected replacement %+v", got)
	}
	if !got.CreatedAt.Equal(created) || got.CreatedBy != "uid-1" || got.Type != models.DonationTypeRecurring {
		t.Fatalf("expected stored bookkeeping to carry over, got %+v", got)
	}
	if len(backend.updated) != 1 || backend.updated[0].ID != "7" {
		t.Fatalf("expected one backend update for id 7, got %+v", backend.updated)
	}
}

func TestUpdateDonationErrors(t *testing.T) {
	valid := dto.DonationDraft{DonorName: "a", PurposeTag: "x", Amount: 1}

	t.Run("unknown id", func(t *testing.T) {
		backend := &fakeDonationBackend{donations: []models.Donation{{ID: "1"}}}
		svc := newTestFcraService(backend, time.Now())

		_, err := svc.UpdateDonation(helpers.TestCtx(), "99", valid)
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if len(backend.updated) != 0 {
			t.Fatal("expected no backend update")
		}
	})

	t.Run("invalid draft", func(t *testing.T) {
		backend := &fakeDonationBackend{donations: []models.Donation{{ID: "1"}}}
		svc := newTestFcraService(backend, time.Now())

		_, err := svc.UpdateDonation(helpers.TestCtx(), "1", dto.DonationDraft{DonorName: "a", PurposeTag: "x"})
		var vErr *errs.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("backend rejects update", func(t *testing.T) {
		backend := &fakeDonationBackend{
			donations: []models.Donation{{ID: "1"}},
			updateErr: errs.NewExternalServiceError("ngo-backend", "donation was not updated", false, nil),
		}
		svc := newTestFcraService(backend, time.Now())

		_, err := svc.UpdateDonation(helpers.TestCtx(), "1", valid)
		var ext *errs.ExternalServiceError
		if !errors.As(err, &ext) {
			t.Fatalf("expected ExternalServiceError, got %v", err)
		}
	})
}

func TestExportForeignDonationsOnlyForeign(t *testing.T) {
	backend := &fakeDonationBackend{donations: []models.Donation{
		{ID: "1", DonorName: "Global Aid", IsForeign: true, FIRC: "F-1"},
		{ID: "2", DonorName: "Local Trust"},
	}}
	svc := newTestFcraService(backend, time.Now())

	var sb strings.Builder
	if err := svc.ExportForeignDonations(helpers.TestCtx(), &sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "Global Aid") || strings.Contains(out, "Local Trust") {
		t.Fatalf("expected only foreign rows, got:\n%s", out)
	}
}
