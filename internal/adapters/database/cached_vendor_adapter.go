package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/providers"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
)

// CachedVendorAdapter wraps a VendorRepository with read-through caching.
// Writes invalidate the affected entries and pass straight through.
type CachedVendorAdapter struct {
	adapter repositories.VendorRepository
	cache   providers.CacheProvider
}

// NewCachedVendorAdapter creates a new cached vendor adapter
func NewCachedVendorAdapter(adapter repositories.VendorRepository, cache providers.CacheProvider) repositories.VendorRepository {
	return &CachedVendorAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	vendorByIDTTL  = 300
	vendorsListTTL = 180
)

func vendorCacheKey(id string) string {
	return fmt.Sprintf("vendor:%s", id)
}

func vendorsListCacheKey(filter repositories.VendorFilter) string {
	return fmt.Sprintf("vendors:list:%d:%d:%t:%d:%d",
		filter.CityID, filter.ServiceID, filter.PremiumOnly, filter.Limit, filter.Offset)
}

// Create passes through and leaves list entries to expire by TTL
func (a *CachedVendorAdapter) Create(ctx context.Context, vendor *entities.Vendor) error {
	return a.adapter.Create(ctx, vendor)
}

// GetByID retrieves a vendor by ID with caching
func (a *CachedVendorAdapter) GetByID(ctx context.Context, id string) (*entities.Vendor, error) {
	cacheKey := vendorCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var vendor entities.Vendor
		if err := json.Unmarshal(cached, &vendor); err == nil {
			return &vendor, nil
		}
		log.Warn().Str("vendor_id", id).Msg("failed to unmarshal cached vendor, refetching")
	}

	vendor, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Populate the cache off the request path
	go func() {
		if data, err := json.Marshal(vendor); err == nil {
			if err := a.cache.Set(context.Background(), cacheKey, data, vendorByIDTTL); err != nil {
				log.Warn().Err(err).Str("vendor_id", id).Msg("failed to cache vendor")
			}
		}
	}()

	return vendor, nil
}

// Update updates a vendor and invalidates its cache entry
func (a *CachedVendorAdapter) Update(ctx context.Context, vendor *entities.Vendor) error {
	if err := a.adapter.Update(ctx, vendor); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, vendorCacheKey(vendor.ID)); err != nil {
		log.Warn().Err(err).Str("vendor_id", vendor.ID).Msg("failed to invalidate vendor cache")
	}

	return nil
}

// List retrieves vendors with caching keyed on the filter
func (a *CachedVendorAdapter) List(ctx context.Context, filter repositories.VendorFilter) ([]*entities.Vendor, error) {
	cacheKey := vendorsListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var vendors []*entities.Vendor
		if err := json.Unmarshal(cached, &vendors); err == nil {
			return vendors, nil
		}
	}

	vendors, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		if data, err := json.Marshal(vendors); err == nil {
			if err := a.cache.Set(context.Background(), cacheKey, data, vendorsListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache vendor list")
			}
		}
	}()

	return vendors, nil
}
