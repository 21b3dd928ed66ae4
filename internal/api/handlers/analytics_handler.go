package handlers

import (
	"net/http"

	"github.com/knotworks/vendorhub/internal/application/services"
)

// AnalyticsHandler serves vendor dashboard analytics
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetVendorAnalytics handles GET /api/vendors/{id}/analytics
func (h *AnalyticsHandler) GetVendorAnalytics(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("id")
	if vendorID == "" {
		respondWithError(w, http.StatusBadRequest, "vendor ID is required")
		return
	}

	period := services.AnalyticsPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = services.PeriodMonth
	}

	analytics, err := h.analyticsService.ForVendor(r.Context(), vendorID, period)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, analytics)
}
