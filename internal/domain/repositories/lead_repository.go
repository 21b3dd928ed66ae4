package repositories

import (
	"context"
	"time"

	"github.com/knotworks/vendorhub/internal/domain/entities"
)

// LeadRepository defines the interface for lead data operations
type LeadRepository interface {
	// Create inserts a new lead. Implementations must surface a unique
	// constraint violation as a CONFLICT AppError so callers can treat it
	// as an idempotent no-op.
	Create(ctx context.Context, lead *entities.Lead) error

	// ExistsInWindow reports whether a lead with the same
	// (user, vendor, type, contact method) tuple was created inside
	// [from, to). A nil contactMethod matches rows where the column is null.
	ExistsInWindow(ctx context.Context, key LeadKey, from, to time.Time) (bool, error)

	// ListByVendor retrieves a vendor's leads, newest first
	ListByVendor(ctx context.Context, vendorID string, filter LeadFilter) ([]*entities.Lead, error)

	// UpdateStatus sets the status of a lead and returns the vendor id
	// stored on it, so event consumers get the authoritative routing key
	UpdateStatus(ctx context.Context, id string, status entities.LeadStatus) (string, error)
}

// LeadKey identifies the deduplication tuple for a lead.
type LeadKey struct {
	VendorID      string
	UserID        string
	LeadType      entities.LeadType
	ContactMethod *string
}

// LeadFilter defines filters for listing leads
type LeadFilter struct {
	Status entities.LeadStatus
	Since  *time.Time
	Limit  int
	Offset int
}
