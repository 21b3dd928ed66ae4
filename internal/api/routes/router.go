package routes

import (
	"net/http"

	"github.com/knotworks/vendorhub/internal/api/handlers"
	"github.com/knotworks/vendorhub/internal/api/middleware"
	"github.com/knotworks/vendorhub/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	vendorHandler    *handlers.VendorHandler
	referenceHandler *handlers.ReferenceHandler
	leadHandler      *handlers.LeadHandler
	analyticsHandler *handlers.AnalyticsHandler
	reviewHandler    *handlers.ReviewHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	vendorHandler *handlers.VendorHandler,
	referenceHandler *handlers.ReferenceHandler,
	leadHandler *handlers.LeadHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	reviewHandler *handlers.ReviewHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		vendorHandler:    vendorHandler,
		referenceHandler: referenceHandler,
		leadHandler:      leadHandler,
		analyticsHandler: analyticsHandler,
		reviewHandler:    reviewHandler,
		cacheMiddleware:  cacheMiddleware,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Vendor endpoints
	r.mux.HandleFunc("GET /api/vendors", r.vendorHandler.ListVendors)
	r.mux.HandleFunc("GET /api/vendors/suggest", r.vendorHandler.SuggestVendors)
	r.mux.HandleFunc("GET /api/vendors/{id}", r.vendorHandler.GetVendor)
	r.mux.HandleFunc("POST /api/vendors", r.vendorHandler.CreateVendor)
	r.mux.HandleFunc("PATCH /api/vendors/{id}", r.vendorHandler.UpdateVendor)

	// Reference lists
	r.mux.HandleFunc("GET /api/cities", r.referenceHandler.ListCities)
	r.mux.HandleFunc("GET /api/services", r.referenceHandler.ListServices)

	// Lead endpoints
	r.mux.HandleFunc("POST /api/leads", r.leadHandler.TrackLead)
	r.mux.HandleFunc("GET /api/vendors/{id}/leads", r.leadHandler.ListVendorLeads)
	r.mux.HandleFunc("PATCH /api/leads/{id}/status", r.leadHandler.UpdateLeadStatus)

	// Dashboard analytics
	r.mux.HandleFunc("GET /api/vendors/{id}/analytics", r.analyticsHandler.GetVendorAnalytics)

	// Reviews and invitations
	r.mux.HandleFunc("GET /api/vendors/{id}/reviews", r.reviewHandler.ListVendorReviews)
	r.mux.HandleFunc("POST /api/vendors/{id}/review-invitations", r.reviewHandler.CreateInvitation)
	r.mux.HandleFunc("GET /api/vendors/{id}/review-invitations", r.reviewHandler.ListInvitations)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
