package repositories

import (
	"context"

	"github.com/knotworks/vendorhub/internal/domain/entities"
)

// VendorRepository defines the interface for vendor profile data operations
type VendorRepository interface {
	// Create creates a new vendor profile
	Create(ctx context.Context, vendor *entities.Vendor) error

	// GetByID retrieves a vendor by ID
	GetByID(ctx context.Context, id string) (*entities.Vendor, error)

	// Update updates a vendor profile
	Update(ctx context.Context, vendor *entities.Vendor) error

	// List retrieves vendors with filters, joined with their service and
	// city names, ordered by descending rating
	List(ctx context.Context, filter VendorFilter) ([]*entities.Vendor, error)
}

// VendorSearchRepository defines the interface for the external search index
type VendorSearchRepository interface {
	// Index upserts a vendor into the search index
	Index(ctx context.Context, vendor *entities.Vendor) error

	// Delete removes a vendor from the search index
	Delete(ctx context.Context, id string) error
}

// VendorFilter defines filters for listing vendors
type VendorFilter struct {
	CityID    int64
	ServiceID int64
	// PremiumOnly restricts the result to premium members; membership
	// expiry is evaluated in the discovery layer, not in SQL.
	PremiumOnly bool
	Limit       int
	Offset      int
}

// ReferenceRepository serves the small city/service reference lists.
type ReferenceRepository interface {
	// ListCities returns all cities, sorted alphabetically
	ListCities(ctx context.Context) ([]entities.City, error)

	// ListServices returns all service categories, sorted alphabetically
	ListServices(ctx context.Context) ([]entities.Service, error)
}
