package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

type fakeSearchRepo struct {
	indexed  []*entities.Vendor
	deleted  []string
	indexErr error
}

func (f *fakeSearchRepo) Index(ctx context.Context, vendor *entities.Vendor) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, vendor)
	return nil
}

func (f *fakeSearchRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestVendorService_Create(t *testing.T) {
	repo := &fakeVendorRepo{}
	search := &fakeSearchRepo{}

	svc := NewVendorService(repo, search)
	vendor := &entities.Vendor{BusinessName: "Rose Garden Events", CityID: 1, ServiceID: 12}

	err := svc.Create(context.Background(), vendor)

	require.NoError(t, err)
	assert.NotEmpty(t, vendor.ID)
	assert.False(t, vendor.CreatedAt.IsZero())
	require.Len(t, repo.created, 1)
	require.Len(t, search.indexed, 1)
	assert.Equal(t, vendor.ID, search.indexed[0].ID)
}

func TestVendorService_Create_RequiresBusinessName(t *testing.T) {
	svc := NewVendorService(&fakeVendorRepo{}, nil)

	err := svc.Create(context.Background(), &entities.Vendor{})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestVendorService_Create_IndexFailureDoesNotFailWrite(t *testing.T) {
	repo := &fakeVendorRepo{}
	search := &fakeSearchRepo{indexErr: apperrors.NewExternalError("typesense down", nil)}

	svc := NewVendorService(repo, search)
	err := svc.Create(context.Background(), &entities.Vendor{BusinessName: "Rose Garden Events"})

	require.NoError(t, err)
	assert.Len(t, repo.created, 1)
}

func TestVendorService_Update_ReindexesVendor(t *testing.T) {
	repo := &fakeVendorRepo{}
	search := &fakeSearchRepo{}

	svc := NewVendorService(repo, search)
	err := svc.Update(context.Background(), &entities.Vendor{ID: "vendor-1", BusinessName: "Renamed"})

	require.NoError(t, err)
	require.Len(t, repo.updated, 1)
	require.Len(t, search.indexed, 1)
}

func TestVendorService_Reindex(t *testing.T) {
	repo := &fakeVendorRepo{vendors: []*entities.Vendor{
		{ID: "1", BusinessName: "A"},
		{ID: "2", BusinessName: "B"},
	}}
	search := &fakeSearchRepo{}

	svc := NewVendorService(repo, search)
	count, err := svc.Reindex(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, search.indexed, 2)
}

func TestVendorService_Reindex_WithoutIndex(t *testing.T) {
	svc := NewVendorService(&fakeVendorRepo{}, nil)

	_, err := svc.Reindex(context.Background())

	require.Error(t, err)
}
