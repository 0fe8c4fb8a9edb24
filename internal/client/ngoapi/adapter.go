package ngoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GregMSThompson/ngo-dashboard/internal/config"
	"github.com/GregMSThompson/ngo-dashboard/internal/dto"
	"github.com/GregMSThompson/ngo-dashboard/internal/errs"
	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

const serviceName = "ngo-backend"

// IdempotencyHeader carries the client-generated submission token.
const IdempotencyHeader = "Idempotency-Key"

// maxBodyBytes bounds how much of a backend response we read.
const maxBodyBytes = 4 << 20

// Options configures the NGO backend adapter.
type Options struct {
	BaseURL    string
	Token      string
	Endpoints  config.Endpoints
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Adapter talks to the NGO backend (the remote store) over JSON/HTTP.
type Adapter struct {
	baseURL   string
	token     string
	endpoints config.Endpoints
	client    *http.Client
}

func NewAdapter(opts Options) *Adapter {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Adapter{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		token:     opts.Token,
		endpoints: opts.Endpoints,
		client:    client,
	}
}

func (a *Adapter) ListDonations(ctx context.Context) ([]models.Donation, error) {
	var resp donationsResponse
	if err := a.do(ctx, http.MethodGet, a.endpoints.ListDonations, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Success != nil && !*resp.Success {
		return nil, errs.NewExternalServiceError(serviceName, failureMessage(resp.Error, "donation listing failed"), false, nil)
	}

	out := make([]models.Donation, 0, len(resp.Results))
	for _, w := range resp.Results {
		out = append(out, w.toModel())
	}
	return out, nil
}

func (a *Adapter) CreateDonation(ctx context.Context, d models.Donation) (string, error) {
	var resp writeResponse
	if err := a.do(ctx, http.MethodPost, a.endpoints.CreateDonation, d, nil, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", errs.NewExternalServiceError(serviceName, failureMessage(resp.Error, "donation was not saved"), false, nil)
	}
	return string(resp.ID), nil
}

// UpdateDonation replaces the stored donation d.ID with d.
func (a *Adapter) UpdateDonation(ctx context.Context, d models.Donation) error {
	path := strings.ReplaceAll(a.endpoints.UpdateDonation, "{id}", url.PathEscape(d.ID))
	var resp updateResponse
	if err := a.do(ctx, http.MethodPut, path, d, nil, &resp); err != nil {
		return err
	}
	if resp.Success != nil && !*resp.Success {
		return errs.NewExternalServiceError(serviceName, failureMessage(resp.Error, "donation was not updated"), false, nil)
	}
	return nil
}

// ListApplications returns the backend's applications. A response with
// success=false is an empty listing, not an error.
func (a *Adapter) ListApplications(ctx context.Context) ([]models.GrantApplication, error) {
	var resp applicationsResponse
	if err := a.do(ctx, http.MethodGet, a.endpoints.ListApplications, nil, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return []models.GrantApplication{}, nil
	}

	out := make([]models.GrantApplication, 0, len(resp.Applications))
	for _, w := range resp.Applications {
		out = append(out, w.toModel())
	}
	return out, nil
}

// CreateApplication posts a submission and returns the server-assigned id,
// which may be empty when the backend does not report one.
func (a *Adapter) CreateApplication(ctx context.Context, sub dto.Submission) (string, error) {
	d := sub.Draft
	payload := applicationPayload{
		ApplicantName:      d.ApplicantName,
		ApplicantEmail:     d.ApplicantEmail,
		ApplicantPhone:     d.ApplicantPhone,
		OrganizationName:   d.OrganizationName,
		ProjectTitle:       d.ProjectTitle,
		ProjectDescription: d.ProjectDescription,
		RequestedAmount:    d.RequestedAmount,
		ProjectDuration:    d.ProjectDuration,
		Category:           d.Category,
		IdempotencyKey:     sub.IdempotencyKey,
	}
	var headers http.Header
	if sub.IdempotencyKey != "" {
		headers = http.Header{IdempotencyHeader: []string{sub.IdempotencyKey}}
	}

	var resp writeResponse
	if err := a.do(ctx, http.MethodPost, a.endpoints.CreateApplication, payload, headers, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", errs.NewExternalServiceError(serviceName, failureMessage(resp.Error, "application was not accepted"), false, nil)
	}
	return string(resp.ID), nil
}

// UpdateGrantStatus reports false when the backend matched no application.
func (a *Adapter) UpdateGrantStatus(ctx context.Context, id, status, notes string) (bool, error) {
	var resp writeResponse
	payload := statusPayload{ApplicationID: id, Status: status, ReviewNotes: notes}
	if err := a.do(ctx, http.MethodPost, a.endpoints.UpdateGrantStatus, payload, nil, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (a *Adapter) do(ctx context.Context, method, path string, body any, headers http.Header, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ngoapi: encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.url(path), reader)
	if err != nil {
		return fmt.Errorf("ngoapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	res, err := a.client.Do(req)
	if err != nil {
		transient := !errors.Is(err, context.Canceled)
		return errs.NewExternalServiceError(serviceName, "request failed", transient, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return errs.NewExternalServiceError(serviceName, "read response", true, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var failure struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &failure)
		msg := failureMessage(failure.Error, fmt.Sprintf("unexpected status %d", res.StatusCode))
		return errs.NewExternalServiceError(serviceName, msg, res.StatusCode >= 500, nil)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errs.NewExternalServiceError(serviceName, "malformed response", false, err)
	}
	return nil
}

func (a *Adapter) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return a.baseURL + "/" + strings.TrimLeft(path, "/")
}

func failureMessage(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
