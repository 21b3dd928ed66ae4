package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotworks/vendorhub/internal/api/handlers"
	"github.com/knotworks/vendorhub/internal/application/services"
	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

type stubLeadRepo struct {
	existing bool
	created  []*entities.Lead
	leads    []*entities.Lead
	statuses map[string]entities.LeadStatus
}

func (s *stubLeadRepo) Create(ctx context.Context, lead *entities.Lead) error {
	s.created = append(s.created, lead)
	return nil
}

func (s *stubLeadRepo) ExistsInWindow(ctx context.Context, key repositories.LeadKey, from, to time.Time) (bool, error) {
	return s.existing, nil
}

func (s *stubLeadRepo) ListByVendor(ctx context.Context, vendorID string, filter repositories.LeadFilter) ([]*entities.Lead, error) {
	return s.leads, nil
}

func (s *stubLeadRepo) UpdateStatus(ctx context.Context, id string, status entities.LeadStatus) (string, error) {
	if s.statuses == nil {
		s.statuses = make(map[string]entities.LeadStatus)
	}
	s.statuses[id] = status
	return "vendor-1", nil
}

type stubProfileRepo struct{}

func (s *stubProfileRepo) GetByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	return nil, apperrors.NewNotFoundError("no profile")
}

func newLeadHandler(repo *stubLeadRepo) *handlers.LeadHandler {
	svc := services.NewLeadService(repo, &stubProfileRepo{}, nil, nil)
	return handlers.NewLeadHandler(svc)
}

func TestLeadHandler_TrackLead_Created(t *testing.T) {
	repo := &stubLeadRepo{}
	handler := newLeadHandler(repo)

	body := `{"vendor_id":"vendor-1","lead_type":"call","contact_method":"phone"}`
	req := httptest.NewRequest("POST", "/api/leads", strings.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()

	handler.TrackLead(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.created, 1)

	var response struct {
		Deduplicated bool           `json:"deduplicated"`
		Lead         *entities.Lead `json:"lead"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.False(t, response.Deduplicated)
	require.NotNil(t, response.Lead)
	assert.Equal(t, "vendor-1", response.Lead.VendorID)
}

func TestLeadHandler_TrackLead_DuplicateReturnsOK(t *testing.T) {
	repo := &stubLeadRepo{existing: true}
	handler := newLeadHandler(repo)

	body := `{"vendor_id":"vendor-1","lead_type":"whatsapp"}`
	req := httptest.NewRequest("POST", "/api/leads", strings.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()

	handler.TrackLead(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.created)

	var response struct {
		Deduplicated bool `json:"deduplicated"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Deduplicated)
}

func TestLeadHandler_TrackLead_AnonymousContactUnauthorized(t *testing.T) {
	repo := &stubLeadRepo{}
	handler := newLeadHandler(repo)

	body := `{"vendor_id":"vendor-1","lead_type":"call"}`
	req := httptest.NewRequest("POST", "/api/leads", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.TrackLead(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, repo.created)
}

func TestLeadHandler_TrackLead_InvalidBody(t *testing.T) {
	handler := newLeadHandler(&stubLeadRepo{})

	req := httptest.NewRequest("POST", "/api/leads", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	handler.TrackLead(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeadHandler_ListVendorLeads(t *testing.T) {
	repo := &stubLeadRepo{leads: []*entities.Lead{
		{ID: "lead-1", VendorID: "vendor-1", LeadType: entities.LeadTypeCall, Status: entities.LeadStatusPending},
	}}
	handler := newLeadHandler(repo)

	req := httptest.NewRequest("GET", "/api/vendors/vendor-1/leads", nil)
	req.SetPathValue("id", "vendor-1")
	w := httptest.NewRecorder()

	handler.ListVendorLeads(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
}

func TestLeadHandler_UpdateLeadStatus(t *testing.T) {
	repo := &stubLeadRepo{}
	handler := newLeadHandler(repo)

	body := `{"status":"booked"}`
	req := httptest.NewRequest("PATCH", "/api/leads/lead-1/status", strings.NewReader(body))
	req.SetPathValue("id", "lead-1")
	w := httptest.NewRecorder()

	handler.UpdateLeadStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.LeadStatusBooked, repo.statuses["lead-1"])
}

func TestLeadHandler_UpdateLeadStatus_UnknownStatus(t *testing.T) {
	handler := newLeadHandler(&stubLeadRepo{})

	body := `{"status":"archived"}`
	req := httptest.NewRequest("PATCH", "/api/leads/lead-1/status", strings.NewReader(body))
	req.SetPathValue("id", "lead-1")
	w := httptest.NewRecorder()

	handler.UpdateLeadStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
