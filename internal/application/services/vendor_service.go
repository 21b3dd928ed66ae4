package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

// VendorService handles vendor profile CRUD and keeps the search index in
// step with the database.
type VendorService struct {
	repo       repositories.VendorRepository
	searchRepo repositories.VendorSearchRepository
	now        func() time.Time
}

// NewVendorService creates a new vendor service. searchRepo may be nil.
func NewVendorService(repo repositories.VendorRepository, searchRepo repositories.VendorSearchRepository) *VendorService {
	return &VendorService{
		repo:       repo,
		searchRepo: searchRepo,
		now:        time.Now,
	}
}

// Create creates a new vendor profile and indexes it
func (s *VendorService) Create(ctx context.Context, vendor *entities.Vendor) error {
	if vendor.BusinessName == "" {
		return apperrors.NewValidationError("business_name is required")
	}
	if vendor.ID == "" {
		vendor.ID = uuid.NewString()
	}
	now := s.now().UTC()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now

	if err := s.repo.Create(ctx, vendor); err != nil {
		return err
	}

	s.index(ctx, vendor)
	return nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, id string) (*entities.Vendor, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates a vendor profile and refreshes its index entry
func (s *VendorService) Update(ctx context.Context, vendor *entities.Vendor) error {
	if vendor.ID == "" {
		return apperrors.NewValidationError("vendor id is required")
	}

	if err := s.repo.Update(ctx, vendor); err != nil {
		return err
	}

	s.index(ctx, vendor)
	return nil
}

// List retrieves vendors with filters
func (s *VendorService) List(ctx context.Context, filter repositories.VendorFilter) ([]*entities.Vendor, error) {
	return s.repo.List(ctx, filter)
}

// Reindex pushes every stored vendor into the search index.
func (s *VendorService) Reindex(ctx context.Context) (int, error) {
	if s.searchRepo == nil {
		return 0, apperrors.NewValidationError("no search index configured")
	}

	vendors, err := s.repo.List(ctx, repositories.VendorFilter{})
	if err != nil {
		return 0, err
	}

	indexed := 0
	for _, vendor := range vendors {
		if err := s.searchRepo.Index(ctx, vendor); err != nil {
			log.Warn().Err(err).Str("vendor_id", vendor.ID).Msg("Failed to index vendor")
			continue
		}
		indexed++
	}
	return indexed, nil
}

// index updates the search index entry. Indexing is eventually consistent;
// a failure is logged, not returned.
func (s *VendorService) index(ctx context.Context, vendor *entities.Vendor) {
	if s.searchRepo == nil {
		return
	}
	if err := s.searchRepo.Index(ctx, vendor); err != nil {
		log.Warn().Err(err).Str("vendor_id", vendor.ID).Msg("Failed to index vendor")
	}
}
