package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	tsclient "github.com/knotworks/vendorhub/internal/infrastructure/clients/typesense"
)

const collectionName = tsclient.VendorsCollection

// TypesenseAdapter implements vendor search indexing using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements VendorSearchRepository
var _ repositories.VendorSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the vendors collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "business_name", Type: "string"},
			{Name: "service_name", Type: "string", Facet: pointer.True()},
			{Name: "city_name", Type: "string", Facet: pointer.True()},
			{Name: "address", Type: "string"},
			{Name: "is_premium_member", Type: "bool"},
			{Name: "rating", Type: "float"},
			{Name: "review_count", Type: "int32"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Reset drops the vendors collection and recreates it from the schema.
func (a *TypesenseAdapter) Reset(ctx context.Context) error {
	if _, err := a.client.Client().Collection(collectionName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete typesense collection: %w", err)
	}
	return a.InitSchema(ctx)
}

// Index upserts a vendor into the search index
func (a *TypesenseAdapter) Index(ctx context.Context, vendor *entities.Vendor) error {
	document := vendorDocument(vendor)

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index vendor: %w", err)
	}

	return nil
}

// Delete removes a vendor from the search index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete vendor from index: %w", err)
	}
	return nil
}

// vendorDocument flattens a vendor into an indexable document
func vendorDocument(vendor *entities.Vendor) map[string]interface{} {
	return map[string]interface{}{
		"id":                vendor.ID,
		"business_name":     vendor.BusinessName,
		"service_name":      vendor.ServiceName,
		"city_name":         vendor.CityName,
		"address":           vendor.Address,
		"is_premium_member": vendor.IsPremiumMember,
		"rating":            vendor.Rating,
		"review_count":      vendor.ReviewCount,
		"created_at":        vendor.CreatedAt.Unix(),
	}
}
