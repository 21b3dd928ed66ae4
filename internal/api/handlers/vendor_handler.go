package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/knotworks/vendorhub/internal/application/services"
	"github.com/knotworks/vendorhub/internal/domain/entities"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

// VendorHandler handles vendor-related HTTP requests
type VendorHandler struct {
	vendorService    *services.VendorService
	discoveryService *services.DiscoveryService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *services.VendorService, discoveryService *services.DiscoveryService) *VendorHandler {
	return &VendorHandler{
		vendorService:    vendorService,
		discoveryService: discoveryService,
	}
}

// ListVendors handles GET /api/vendors
func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	params := services.BrowseParams{
		CityID:    parseInt64Param(r, "city_id"),
		ServiceID: parseInt64Param(r, "service_id"),
		Query:     r.URL.Query().Get("q"),
		Limit:     int(parseInt64Param(r, "limit")),
		Offset:    int(parseInt64Param(r, "offset")),
	}

	vendors, err := h.discoveryService.Browse(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"vendors": vendors,
		"count":   len(vendors),
	})
}

// SuggestVendors handles GET /api/vendors/suggest
func (h *VendorHandler) SuggestVendors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	suggestions, err := h.discoveryService.Suggest(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if suggestions == nil {
		suggestions = []entities.Suggestion{}
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"count":       len(suggestions),
	})
}

// GetVendor handles GET /api/vendors/{id}
func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("id")
	if vendorID == "" {
		respondWithError(w, http.StatusBadRequest, "vendor ID is required")
		return
	}

	vendor, err := h.vendorService.GetByID(r.Context(), vendorID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, vendor)
}

// CreateVendor handles POST /api/vendors
func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var vendor entities.Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.vendorService.Create(r.Context(), &vendor); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, vendor)
}

// UpdateVendor handles PATCH /api/vendors/{id}
func (h *VendorHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("id")
	if vendorID == "" {
		respondWithError(w, http.StatusBadRequest, "vendor ID is required")
		return
	}

	var vendor entities.Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	vendor.ID = vendorID

	if err := h.vendorService.Update(r.Context(), &vendor); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, vendor)
}

// parseInt64Param parses an integer query parameter, returning 0 when the
// parameter is absent or malformed.
func parseInt64Param(r *http.Request, name string) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error to an HTTP status
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeUnauthorized:
			respondWithError(w, http.StatusUnauthorized, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
