package repositories

import (
	"context"

	"github.com/knotworks/vendorhub/internal/domain/entities"
)

// ProfileRepository defines lookups against the identity-provider-backed
// profiles table.
type ProfileRepository interface {
	// GetByUserID retrieves a profile by the identity provider's user id
	GetByUserID(ctx context.Context, userID string) (*entities.Profile, error)
}
