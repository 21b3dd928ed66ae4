package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/knotworks/vendorhub/internal/domain/entities"
)

func TestVendorDocument(t *testing.T) {
	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	vendor := &entities.Vendor{
		ID:              "vendor-1",
		BusinessName:    "Rose Garden Events",
		ServiceName:     "Photography",
		CityName:        "Lagos",
		Address:         "12 Allen Avenue, Ikeja",
		IsPremiumMember: true,
		Rating:          4.5,
		ReviewCount:     27,
		CreatedAt:       created,
	}

	doc := vendorDocument(vendor)

	assert.Equal(t, "vendor-1", doc["id"])
	assert.Equal(t, "Rose Garden Events", doc["business_name"])
	assert.Equal(t, "Photography", doc["service_name"])
	assert.Equal(t, "Lagos", doc["city_name"])
	assert.Equal(t, true, doc["is_premium_member"])
	assert.Equal(t, 4.5, doc["rating"])
	assert.Equal(t, 27, doc["review_count"])
	assert.Equal(t, created.Unix(), doc["created_at"])
}
