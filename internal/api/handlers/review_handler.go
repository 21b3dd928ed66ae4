package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/knotworks/vendorhub/internal/application/services"
)

// ReviewHandler handles review and review-invitation HTTP requests
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListVendorReviews handles GET /api/vendors/{id}/reviews
func (h *ReviewHandler) ListVendorReviews(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("id")
	if vendorID == "" {
		respondWithError(w, http.StatusBadRequest, "vendor ID is required")
		return
	}

	reviews, err := h.reviewService.ListByVendor(r.Context(), vendorID, int(parseInt64Param(r, "limit")))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

type inviteRequest struct {
	BusinessName  string  `json:"business_name"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
}

// CreateInvitation handles POST /api/vendors/{id}/review-invitations
func (h *ReviewHandler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("id")
	if vendorID == "" {
		respondWithError(w, http.StatusBadRequest, "vendor ID is required")
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invitation, err := h.reviewService.Invite(r.Context(), services.InviteInput{
		VendorID:      vendorID,
		BusinessName:  req.BusinessName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, invitation)
}

// ListInvitations handles GET /api/vendors/{id}/review-invitations
func (h *ReviewHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("id")
	if vendorID == "" {
		respondWithError(w, http.StatusBadRequest, "vendor ID is required")
		return
	}

	invitations, err := h.reviewService.ListInvitations(r.Context(), vendorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"invitations": invitations,
		"count":       len(invitations),
	})
}
