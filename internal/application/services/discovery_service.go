package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
)

const (
	maxBusinessSuggestions = 5
	maxServiceSuggestions  = 3
	maxCitySuggestions     = 2
)

// DiscoveryService serves the customer-facing vendor browse surface:
// free-text suggestions and faceted filtering over discoverable vendors.
type DiscoveryService struct {
	vendorRepo repositories.VendorRepository
	refRepo    repositories.ReferenceRepository
	now        func() time.Time
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(vendorRepo repositories.VendorRepository, refRepo repositories.ReferenceRepository) *DiscoveryService {
	return &DiscoveryService{
		vendorRepo: vendorRepo,
		refRepo:    refRepo,
		now:        time.Now,
	}
}

// BrowseParams holds the facet selections for a vendor listing. A zero
// CityID or ServiceID means "all".
type BrowseParams struct {
	CityID    int64
	ServiceID int64
	Query     string
	Limit     int
	Offset    int
}

// Browse returns the ordered vendor listing for the given facets. Only
// vendors with an active premium membership are returned.
func (s *DiscoveryService) Browse(ctx context.Context, params BrowseParams) ([]*entities.Vendor, error) {
	// Paging happens after the eligibility and text filters; a SQL-side
	// window would drop eligible vendors and return short pages.
	vendors, err := s.vendorRepo.List(ctx, repositories.VendorFilter{
		CityID:      params.CityID,
		ServiceID:   params.ServiceID,
		PremiumOnly: true,
	})
	if err != nil {
		return nil, err
	}

	vendors = DiscoverableVendors(vendors, s.now())
	vendors = FilterVendors(vendors, params.CityID, params.ServiceID, params.Query)
	return pageVendors(vendors, params.Limit, params.Offset), nil
}

// pageVendors applies offset and limit to an already filtered, ordered list.
func pageVendors(vendors []*entities.Vendor, limit, offset int) []*entities.Vendor {
	if offset > 0 {
		if offset >= len(vendors) {
			return []*entities.Vendor{}
		}
		vendors = vendors[offset:]
	}
	if limit > 0 && limit < len(vendors) {
		vendors = vendors[:limit]
	}
	return vendors
}

// Suggest returns ranked suggestions for a free-text query: business name
// matches first, then service names, then cities.
func (s *DiscoveryService) Suggest(ctx context.Context, query string) ([]entities.Suggestion, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	vendors, err := s.vendorRepo.List(ctx, repositories.VendorFilter{PremiumOnly: true})
	if err != nil {
		return nil, err
	}

	cities, err := s.refRepo.ListCities(ctx)
	if err != nil {
		return nil, err
	}

	vendors = DiscoverableVendors(vendors, s.now())
	return GenerateSuggestions(query, vendors, cities), nil
}

// Cities returns the city reference list, sorted alphabetically.
func (s *DiscoveryService) Cities(ctx context.Context) ([]entities.City, error) {
	return s.refRepo.ListCities(ctx)
}

// Services returns the service reference list, sorted alphabetically.
func (s *DiscoveryService) Services(ctx context.Context) ([]entities.Service, error) {
	return s.refRepo.ListServices(ctx)
}

// DiscoverableVendors keeps only vendors whose membership makes them
// visible to customers at the given time.
func DiscoverableVendors(vendors []*entities.Vendor, now time.Time) []*entities.Vendor {
	result := make([]*entities.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if v.DiscoverableAt(now) {
			result = append(result, v)
		}
	}
	return result
}

// GenerateSuggestions derives ranked suggestions from a query against the
// in-memory vendor and city lists. It is pure; callers recompute it on
// every input change.
func GenerateSuggestions(query string, vendors []*entities.Vendor, cities []entities.City) []entities.Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var suggestions []entities.Suggestion

	// Business matches: starts-with before contains, then by rating.
	var matches []*entities.Vendor
	for _, v := range vendors {
		if strings.Contains(strings.ToLower(v.BusinessName), q) {
			matches = append(matches, v)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		iStarts := strings.HasPrefix(strings.ToLower(matches[i].BusinessName), q)
		jStarts := strings.HasPrefix(strings.ToLower(matches[j].BusinessName), q)
		if iStarts != jStarts {
			return iStarts
		}
		return matches[i].Rating > matches[j].Rating
	})
	for i, v := range matches {
		if i >= maxBusinessSuggestions {
			break
		}
		suggestions = append(suggestions, entities.Suggestion{
			Type:   entities.SuggestionTypeBusiness,
			Name:   v.BusinessName,
			Vendor: v,
		})
	}

	// Service matches come from services actually present among the fetched
	// vendors, in order of discovery.
	seen := make(map[string]struct{})
	serviceCount := 0
	for _, v := range vendors {
		if serviceCount >= maxServiceSuggestions {
			break
		}
		name := v.ServiceName
		if name == "" || !strings.Contains(strings.ToLower(name), q) {
			continue
		}
		if _, ok := seen[strings.ToLower(name)]; ok {
			continue
		}
		seen[strings.ToLower(name)] = struct{}{}
		suggestions = append(suggestions, entities.Suggestion{
			Type: entities.SuggestionTypeService,
			Name: name,
		})
		serviceCount++
	}

	cityCount := 0
	for _, c := range cities {
		if cityCount >= maxCitySuggestions {
			break
		}
		if !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		suggestions = append(suggestions, entities.Suggestion{
			Type: entities.SuggestionTypeCity,
			Name: c.Name,
		})
		cityCount++
	}

	return suggestions
}

// FilterVendors applies the city/service/text facets and the display sort
// to an in-memory vendor list. Zero city or service ids mean "all". The
// transform is pure and deterministic.
func FilterVendors(vendors []*entities.Vendor, cityID, serviceID int64, query string) []*entities.Vendor {
	q := strings.ToLower(strings.TrimSpace(query))

	result := make([]*entities.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if cityID != 0 && v.CityID != cityID {
			continue
		}
		if serviceID != 0 && v.ServiceID != serviceID {
			continue
		}
		if q != "" && !vendorMatchesQuery(v, q) {
			continue
		}
		result = append(result, v)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if q != "" {
			iStarts := strings.HasPrefix(strings.ToLower(result[i].BusinessName), q)
			jStarts := strings.HasPrefix(strings.ToLower(result[j].BusinessName), q)
			if iStarts != jStarts {
				return iStarts
			}
		}
		if cityID != 0 {
			iCity := result[i].CityID == cityID
			jCity := result[j].CityID == cityID
			if iCity != jCity {
				return iCity
			}
		}
		return result[i].Rating > result[j].Rating
	})

	return result
}

// vendorMatchesQuery reports whether q appears in any of the vendor's
// searchable text fields. q must already be lower-cased.
func vendorMatchesQuery(v *entities.Vendor, q string) bool {
	fields := []string{
		v.BusinessName,
		v.ServiceName,
		v.Address,
		v.BusinessDetails,
		v.CityName,
	}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
