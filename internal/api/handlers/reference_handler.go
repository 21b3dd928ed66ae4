package handlers

import (
	"net/http"

	"github.com/knotworks/vendorhub/internal/application/services"
)

// ReferenceHandler serves the city and service reference lists
type ReferenceHandler struct {
	discoveryService *services.DiscoveryService
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(discoveryService *services.DiscoveryService) *ReferenceHandler {
	return &ReferenceHandler{discoveryService: discoveryService}
}

// ListCities handles GET /api/cities
func (h *ReferenceHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.discoveryService.Cities(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cities": cities,
		"count":  len(cities),
	})
}

// ListServices handles GET /api/services
func (h *ReferenceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	servicesList, err := h.discoveryService.Services(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": servicesList,
		"count":    len(servicesList),
	})
}
