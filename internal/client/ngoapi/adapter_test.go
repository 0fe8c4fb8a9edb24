package ngoapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GregMSThompson/ngo-dashboard/internal/config"
	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
	"github.com/GregMSThompson/ngo-dashboard/pkg/helpers"
)

var testEndpoints = config.Endpoints{
	ListDonations:     "/api/fcradonation.php",
	CreateDonation:    "/api/createfcradonation.php",
	UpdateDonation:    "/api/donations/{id}/",
	ListApplications:  "/api/get-grant-applications.php",
	CreateApplication: "/api/submit-grant-application.php",
	UpdateGrantStatus: "/api/update-grant-status.php",
}

func newTestAdapter(t *testing.T, h http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewAdapter(Options{BaseURL: srv.URL + "/", Token: "secret", Endpoints: testEndpoints, Timeout: time.Second})
}

func TestListDonationsDecodesRows(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != testEndpoints.ListDonations {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("expected bearer token, got %q", got)
		}
		w.Write([]byte(`{"success":true,"results":[
			{"id":7,"donor_name":"Global Aid","donor_country":"US","is_foreign":"1","amount":"1000.00","currency":"USD","converted_amount":"83500.00","purpose_tag":"Education","firc":"FIRC-1","created_at":"2024-03-01 10:00:00"},
			{"id":"8","donorName":"Local Trust","isForeign":false,"amount":5000,"currency":"INR","convertedAmount":5000,"purposeTag":"Health","createdAt":"2024-03-02T00:00:00Z"}
		]}`))
	})

	got, err := a.ListDonations(helpers.TestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(got))
	}
	first := got[0]
	if first.ID != "7" || first.DonorName != "Global Aid" || !first.IsForeign || first.FIRC != "FIRC-1" {
		t.Fatalf("unexpected first donation %+v", first)
	}
	if first.ConvertedAmount != 83500 || first.Amount != 1000 {
		t.Fatalf("expected numeric strings to decode, got %+v", first)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("expected MySQL datetime to decode")
	}
	if got[1].IsForeign || got[1].ID != "8" {
		t.Fatalf("unexpected second donation %+v", got[1])
	}
}

func TestListDonationsServerErrorIsTransient(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"db down"}`))
	})

	_, err := a.ListDonations(helpers.TestCtx())
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if !ext.Transient || ext.Message != "db down" {
		t.Fatalf("unexpected error fields %+v", ext)
	}
}

func TestListDonationsMalformedBody(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	})

	_, err := a.ListDonations(helpers.TestCtx())
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) || ext.Transient {
		t.Fatalf("expected non-transient ExternalServiceError, got %v", err)
	}
}

func TestListApplicationsUnsuccessfulIsEmpty(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"no table"}`))
	})

	got, err := a.ListApplications(helpers.TestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestListApplicationsNormalisesRows(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"applications":[
			{"id":3,"applicant_name":"Asha","applicant_email":"asha@example.org","project_title":"Water","project_description":"Wells","requested_amount":"250000","category":"environment","status":"under-review","created_at":"2024-05-01 09:30:00"}
		]}`))
	})

	got, err := a.ListApplications(helpers.TestCtx())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 application, got %d", len(got))
	}
	app := got[0]
	if app.ID != "3" || app.ApplicantName != "Asha" || app.RequestedAmount != 250000 {
		t.Fatalf("unexpected application %+v", app)
	}
	if app.Status != "under_review" || app.CreatedBy != "database" {
		t.Fatalf("expected normalised status and origin, got %+v", app)
	}
}

func TestCreateApplicationSendsIdempotencyKey(t *testing.T) {
	var body map[string]any
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get(IdempotencyHeader); got != "key-1" {
			t.Errorf("expected idempotency header, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"success":true,"id":42,"message":"ok"}`))
	})

	sub := dto.Submission{
		Draft: dto.GrantApplicationDraft{
			ApplicantName:      "Asha",
			ApplicantEmail:     "asha@example.org",
			ProjectTitle:       "Water",
			ProjectDescription: "Wells",
			RequestedAmount:    1000,
			Category:           "environment",
		},
		IdempotencyKey: "key-1",
	}
	id, err := a.CreateApplication(helpers.TestCtx(), sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "42" {
		t.Fatalf("expected server id 42, got %q", id)
	}
	if body["idempotencyKey"] != "key-1" || body["projectTitle"] != "Water" {
		t.Fatalf("unexpected request body %v", body)
	}
}

func TestCreateApplicationRejected(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"Missing required field: projectTitle"}`))
	})

	_, err := a.CreateApplication(helpers.TestCtx(), dto.Submission{})
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if ext.Message != "Missing required field: projectTitle" {
		t.Fatalf("unexpected message %q", ext.Message)
	}
}

func TestCreateApplicationUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := NewAdapter(Options{BaseURL: url, Endpoints: testEndpoints, Timeout: time.Second})
	_, err := a.CreateApplication(helpers.TestCtx(), dto.Submission{})
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) || !ext.Transient {
		t.Fatalf("expected transient ExternalServiceError, got %v", err)
	}
}

func TestUpdateGrantStatus(t *testing.T) {
	var body statusPayload
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"success":false,"error":"Application not found"}`))
	})

	ok, err := a.UpdateGrantStatus(helpers.TestCtx(), "9", "approved", "looks good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no match")
	}
	if body.ApplicationID != "9" || body.Status != "approved" || body.ReviewNotes != "looks good" {
		t.Fatalf("unexpected payload %+v", body)
	}
}

func TestCreateDonationSendsCamelCase(t *testing.T) {
	var body map[string]any
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != testEndpoints.CreateDonation {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"success":true,"id":55,"message":"Donation added successfully"}`))
	})

	id, err := a.CreateDonation(helpers.TestCtx(), models.Donation{
		DonorName:       "Global Aid",
		IsForeign:       true,
		Amount:          1000,
		Currency:        "USD",
		ConvertedAmount: 83500,
		FIRC:            "FIRC-1",
		PurposeTag:      "Education",
		CreatedBy:       "anonymous",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "55" {
		t.Fatalf("expected numeric id decoded as 55, got %q", id)
	}
	if body["donorName"] != "Global Aid" || body["FIRC"] != "FIRC-1" || body["createdBy"] != "anonymous" {
		t.Fatalf("unexpected request body %v", body)
	}
	if body["convertedAmount"] != 83500.0 {
		t.Fatalf("expected convertedAmount 83500, got %v", body["convertedAmount"])
	}
}

func TestUpdateDonation(t *testing.T) {
	var body map[string]any
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/donations/7/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"id":7,"donorName":"Global Aid Foundation"}`))
	})

	err := a.UpdateDonation(helpers.TestCtx(), models.Donation{ID: "7", DonorName: "Global Aid Foundation"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body["id"] != "7" || body["donorName"] != "Global Aid Foundation" {
		t.Fatalf("unexpected request body %v", body)
	}
}

func TestUpdateDonationRejected(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"Donation not found"}`))
	})

	err := a.UpdateDonation(helpers.TestCtx(), models.Donation{ID: "7"})
	var ext *errs.ExternalServiceError
	if !errors.As(err, &ext) || ext.Message != "Donation not found" {
		t.Fatalf("expected ExternalServiceError with backend message, got %v", err)
	}
}
