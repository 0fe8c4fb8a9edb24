package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

type stubCatalogService struct {
	grants     []models.Grant
	lastFilter dto.GrantFilter
	lastID     string
}

func (s *stubCatalogService) List(f dto.GrantFilter) []models.Grant {
	s.lastFilter = f
	return s.grants
}

func (s *stubCatalogService) Get(id string) (*models.Grant, error) {
	s.lastID = id
	for _, g := range s.grants {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, errs.NewNotFoundError("grant not found")
}

func TestListGrants_ParsesFilter(t *testing.T) {
	svc := &stubCatalogService{grants: []models.Grant{{ID: "1"}}}
	resp := &stubResponseHandler{}
	h := NewGrantHandlers(&Deps{ResponseHandler: resp, CatalogSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/grants?search=tata&category=Healthcare&minAmount=100000&maxAmount=5000000", nil)
	rr := httptest.NewRecorder()
	h.ListGrants(rr, req)

	if !resp.writeSuccessCalled {
		t.Fatal("expected WriteSuccess to be called")
	}
	want := dto.GrantFilter{Search: "tata", Category: "Healthcare", MinAmount: 100000, MaxAmount: 5000000}
	if svc.lastFilter != want {
		t.Errorf("unexpected filter: %+v", svc.lastFilter)
	}
}

func TestListGrants_BadAmount(t *testing.T) {
	svc := &stubCatalogService{}
	resp := &stubResponseHandler{}
	h := NewGrantHandlers(&Deps{ResponseHandler: resp, CatalogSvc: svc})

	rr := httptest.NewRecorder()
	h.ListGrants(rr, httptest.NewRequest(http.MethodGet, "/grants?minAmount=lots", nil))

	var vErr *errs.ValidationError
	if !errors.As(resp.handleError, &vErr) {
		t.Fatalf("expected ValidationError, got %v", resp.handleError)
	}
}

func TestGetGrant(t *testing.T) {
	svc := &stubCatalogService{grants: []models.Grant{{ID: "5", Title: "Tata Trusts"}}}
	resp := &stubResponseHandler{}
	h := NewGrantHandlers(&Deps{ResponseHandler: resp, CatalogSvc: svc})

	req := withChiParam(httptest.NewRequest(http.MethodGet, "/grants/5", nil), "grantId", "5")
	h.GetGrant(httptest.NewRecorder(), req)
	if !resp.writeSuccessCalled || svc.lastID != "5" {
		t.Fatalf("expected grant lookup to succeed, id=%q", svc.lastID)
	}

	resp = &stubResponseHandler{}
	h = NewGrantHandlers(&Deps{ResponseHandler: resp, CatalogSvc: svc})
	req = withChiParam(httptest.NewRequest(http.MethodGet, "/grants/99", nil), "grantId", "99")
	h.GetGrant(httptest.NewRecorder(), req)
	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError for unknown grant")
	}
}
