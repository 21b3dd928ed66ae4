package repositories

import (
	"context"

	"github.com/knotworks/vendorhub/internal/domain/entities"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	// ListByVendor retrieves a vendor's reviews, newest first
	ListByVendor(ctx context.Context, vendorID string, limit int) ([]*entities.Review, error)
}

// ReviewInvitationRepository defines the interface for review invitations
type ReviewInvitationRepository interface {
	// Create inserts a new invitation
	Create(ctx context.Context, invitation *entities.ReviewInvitation) error

	// ListByVendor retrieves a vendor's invitations, newest first
	ListByVendor(ctx context.Context, vendorID string) ([]*entities.ReviewInvitation, error)
}
