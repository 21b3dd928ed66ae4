package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/knotworks/vendorhub/internal/application/services"
	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
)

// userIDHeader carries the authenticated user id set by the API gateway.
// Absent for anonymous visitors.
const userIDHeader = "X-User-ID"

// LeadHandler handles lead-related HTTP requests
type LeadHandler struct {
	leadService *services.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

type trackLeadRequest struct {
	VendorID      string          `json:"vendor_id"`
	LeadType      string          `json:"lead_type"`
	ContactMethod *string         `json:"contact_method,omitempty"`
	Details       json.RawMessage `json:"details,omitempty"`
}

// TrackLead handles POST /api/leads
func (h *LeadHandler) TrackLead(w http.ResponseWriter, r *http.Request) {
	var req trackLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.leadService.Track(r.Context(), services.TrackInput{
		VendorID:      req.VendorID,
		CurrentUser:   currentUser(r),
		LeadType:      entities.LeadType(req.LeadType),
		ContactMethod: req.ContactMethod,
		Details:       req.Details,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Deduplicated {
		status = http.StatusOK
	}
	respondWithJSON(w, status, map[string]interface{}{
		"lead":         result.Lead,
		"deduplicated": result.Deduplicated,
	})
}

// ListVendorLeads handles GET /api/vendors/{id}/leads
func (h *LeadHandler) ListVendorLeads(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("id")
	if vendorID == "" {
		respondWithError(w, http.StatusBadRequest, "vendor ID is required")
		return
	}

	filter := repositories.LeadFilter{
		Status: entities.LeadStatus(r.URL.Query().Get("status")),
		Limit:  int(parseInt64Param(r, "limit")),
		Offset: int(parseInt64Param(r, "offset")),
	}
	if since := r.URL.Query().Get("since"); since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "since must be RFC 3339")
			return
		}
		filter.Since = &parsed
	}

	leads, err := h.leadService.ListByVendor(r.Context(), vendorID, filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"leads": leads,
		"count": len(leads),
	})
}

type updateLeadStatusRequest struct {
	Status string `json:"status"`
}

// UpdateLeadStatus handles PATCH /api/leads/{id}/status
func (h *LeadHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	leadID := r.PathValue("id")
	if leadID == "" {
		respondWithError(w, http.StatusBadRequest, "lead ID is required")
		return
	}

	var req updateLeadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.leadService.UpdateStatus(r.Context(), leadID, entities.LeadStatus(req.Status)); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"id":     leadID,
		"status": req.Status,
	})
}

// currentUser extracts the signed-in user id from the request, nil when
// anonymous.
func currentUser(r *http.Request) *string {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		return nil
	}
	return &userID
}
