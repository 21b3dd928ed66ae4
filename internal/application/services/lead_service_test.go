package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

type fakeLeadRepo struct {
	existing       bool
	existsErr      error
	createErr      error
	created        []*entities.Lead
	statuses       map[string]entities.LeadStatus
	storedVendorID string
	leads          []*entities.Lead
	lastFrom       time.Time
	lastTo         time.Time
	lastKey        repositories.LeadKey
}

func (f *fakeLeadRepo) Create(ctx context.Context, lead *entities.Lead) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, lead)
	return nil
}

func (f *fakeLeadRepo) ExistsInWindow(ctx context.Context, key repositories.LeadKey, from, to time.Time) (bool, error) {
	f.lastKey = key
	f.lastFrom = from
	f.lastTo = to
	return f.existing, f.existsErr
}

func (f *fakeLeadRepo) ListByVendor(ctx context.Context, vendorID string, filter repositories.LeadFilter) ([]*entities.Lead, error) {
	return f.leads, nil
}

func (f *fakeLeadRepo) UpdateStatus(ctx context.Context, id string, status entities.LeadStatus) (string, error) {
	if f.statuses == nil {
		f.statuses = make(map[string]entities.LeadStatus)
	}
	f.statuses[id] = status
	return f.storedVendorID, nil
}

type fakeProfileRepo struct {
	profile *entities.Profile
	err     error
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeEventBus struct {
	published []*entities.LeadEvent
	err       error
}

func (f *fakeEventBus) Publish(ctx context.Context, channel string, event *entities.LeadEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

func (f *fakeEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.LeadEvent, error) {
	return nil, nil
}

func (f *fakeEventBus) Unsubscribe(ctx context.Context, channel string) error { return nil }

func (f *fakeEventBus) Close() error { return nil }

func newLeadService(repo *fakeLeadRepo, profiles *fakeProfileRepo, bus *fakeEventBus) *LeadService {
	svc := NewLeadService(repo, profiles, bus, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestLeadService_Track_CreatesLead(t *testing.T) {
	repo := &fakeLeadRepo{}
	bus := &fakeEventBus{}
	userID := "user-1"
	name := "Ada"
	phone := "+2348000000000"
	profiles := &fakeProfileRepo{profile: &entities.Profile{
		UserID:      userID,
		DisplayName: &name,
		Phone:       &phone,
	}}

	svc := newLeadService(repo, profiles, bus)
	method := "phone"
	result, err := svc.Track(context.Background(), TrackInput{
		VendorID:      "vendor-1",
		CurrentUser:   &userID,
		LeadType:      entities.LeadTypeCall,
		ContactMethod: &method,
	})

	require.NoError(t, err)
	assert.False(t, result.Deduplicated)
	require.NotNil(t, result.Lead)
	require.Len(t, repo.created, 1)

	lead := repo.created[0]
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, "vendor-1", lead.VendorID)
	assert.Equal(t, entities.LeadStatusPending, lead.Status)
	require.NotNil(t, lead.CustomerName)
	assert.Equal(t, "Ada", *lead.CustomerName)

	// Dedup window is the UTC calendar day of the call.
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), repo.lastFrom)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), repo.lastTo)

	require.Len(t, bus.published, 1)
	assert.Equal(t, entities.LeadEventCreated, bus.published[0].Type)
}

func TestLeadService_Track_DuplicateSameDayIsIdempotent(t *testing.T) {
	repo := &fakeLeadRepo{existing: true}
	bus := &fakeEventBus{}
	userID := "user-1"

	svc := newLeadService(repo, &fakeProfileRepo{}, bus)
	result, err := svc.Track(context.Background(), TrackInput{
		VendorID:    "vendor-1",
		CurrentUser: &userID,
		LeadType:    entities.LeadTypeWhatsApp,
	})

	require.NoError(t, err)
	assert.True(t, result.Deduplicated)
	assert.Empty(t, repo.created)
	assert.Empty(t, bus.published)
}

func TestLeadService_Track_ConflictFromStoreIsIdempotent(t *testing.T) {
	repo := &fakeLeadRepo{createErr: apperrors.NewConflictError("lead already recorded")}
	userID := "user-1"

	svc := newLeadService(repo, &fakeProfileRepo{}, &fakeEventBus{})
	result, err := svc.Track(context.Background(), TrackInput{
		VendorID:    "vendor-1",
		CurrentUser: &userID,
		LeadType:    entities.LeadTypeEmail,
	})

	require.NoError(t, err)
	assert.True(t, result.Deduplicated)
}

func TestLeadService_Track_AnonymousContactRequiresLogin(t *testing.T) {
	repo := &fakeLeadRepo{}

	svc := newLeadService(repo, &fakeProfileRepo{}, &fakeEventBus{})
	_, err := svc.Track(context.Background(), TrackInput{
		VendorID: "vendor-1",
		LeadType: entities.LeadTypeCall,
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.TypeOf(err))
	assert.Empty(t, repo.created)
}

func TestLeadService_Track_AnonymousProfileViewAllowed(t *testing.T) {
	repo := &fakeLeadRepo{}

	svc := newLeadService(repo, &fakeProfileRepo{}, &fakeEventBus{})
	result, err := svc.Track(context.Background(), TrackInput{
		VendorID: "vendor-1",
		LeadType: entities.LeadTypeProfileView,
	})

	require.NoError(t, err)
	assert.False(t, result.Deduplicated)
	require.Len(t, repo.created, 1)
	assert.Nil(t, repo.created[0].UserID)
}

func TestLeadService_Track_ExistenceCheckErrorBlocksAction(t *testing.T) {
	repo := &fakeLeadRepo{existsErr: apperrors.NewInternalError("db down", nil)}
	userID := "user-1"

	svc := newLeadService(repo, &fakeProfileRepo{}, &fakeEventBus{})
	_, err := svc.Track(context.Background(), TrackInput{
		VendorID:    "vendor-1",
		CurrentUser: &userID,
		LeadType:    entities.LeadTypeCall,
	})

	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestLeadService_Track_InvalidType(t *testing.T) {
	userID := "user-1"
	svc := newLeadService(&fakeLeadRepo{}, &fakeProfileRepo{}, &fakeEventBus{})

	_, err := svc.Track(context.Background(), TrackInput{
		VendorID:    "vendor-1",
		CurrentUser: &userID,
		LeadType:    "carrier_pigeon",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestLeadService_UpdateStatus(t *testing.T) {
	repo := &fakeLeadRepo{storedVendorID: "vendor-1"}
	bus := &fakeEventBus{}

	svc := newLeadService(repo, &fakeProfileRepo{}, bus)
	err := svc.UpdateStatus(context.Background(), "lead-1", entities.LeadStatusBooked)

	require.NoError(t, err)
	assert.Equal(t, entities.LeadStatusBooked, repo.statuses["lead-1"])
	require.Len(t, bus.published, 1)
	assert.Equal(t, entities.LeadEventStatusChanged, bus.published[0].Type)
	assert.Equal(t, "vendor-1", bus.published[0].VendorID)
}

func TestLeadService_UpdateStatus_InvalidStatus(t *testing.T) {
	svc := newLeadService(&fakeLeadRepo{}, &fakeProfileRepo{}, &fakeEventBus{})

	err := svc.UpdateStatus(context.Background(), "lead-1", "archived")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}
