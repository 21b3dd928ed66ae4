package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/providers"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	"github.com/knotworks/vendorhub/internal/infrastructure/observability"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

// LeadEventsChannel is the pub/sub channel dashboard consumers listen on.
const LeadEventsChannel = "lead-events"

// LeadService records contact-intent events against vendors and guards
// against same-day duplicates.
type LeadService struct {
	leadRepo    repositories.LeadRepository
	profileRepo repositories.ProfileRepository
	eventBus    providers.EventBus
	metrics     *observability.Metrics
	now         func() time.Time
}

// NewLeadService creates a new lead service. eventBus and metrics may be nil.
func NewLeadService(
	leadRepo repositories.LeadRepository,
	profileRepo repositories.ProfileRepository,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *LeadService {
	return &LeadService{
		leadRepo:    leadRepo,
		profileRepo: profileRepo,
		eventBus:    eventBus,
		metrics:     metrics,
		now:         time.Now,
	}
}

// TrackInput describes a contact-intent action to record. CurrentUser is
// nil for anonymous visitors.
type TrackInput struct {
	VendorID      string
	CurrentUser   *string
	LeadType      entities.LeadType
	ContactMethod *string
	Details       json.RawMessage
}

// TrackResult reports the recorded lead. Deduplicated is true when an
// equivalent lead already existed for the same calendar day and no new
// record was written.
type TrackResult struct {
	Lead         *entities.Lead
	Deduplicated bool
}

// Track records a lead unless an equivalent one already exists today.
//
// Anonymous users may only generate profile_view leads; every other type
// requires a signed-in user. Duplicate detection uses the UTC calendar day
// of the (user, vendor, type, method) tuple: a pre-check query first, then
// the storage unique constraint as a backstop for the check-then-write
// race. Both paths report success so the caller's follow-up action (dialer,
// mail client) is never blocked by a repeat tap.
func (s *LeadService) Track(ctx context.Context, input TrackInput) (*TrackResult, error) {
	ctx, span := observability.StartSpan(ctx, "LeadService.Track")
	defer span.End()

	if input.VendorID == "" {
		return nil, apperrors.NewValidationError("vendor_id is required")
	}
	if !input.LeadType.Valid() {
		return nil, apperrors.NewValidationError("unknown lead type")
	}
	if input.CurrentUser == nil && input.LeadType != entities.LeadTypeProfileView {
		return nil, apperrors.NewUnauthorizedError("sign in required to contact vendors")
	}

	now := s.now().UTC()
	dayStart := now.Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	if input.CurrentUser != nil {
		key := repositories.LeadKey{
			VendorID:      input.VendorID,
			UserID:        *input.CurrentUser,
			LeadType:      input.LeadType,
			ContactMethod: input.ContactMethod,
		}
		exists, err := s.leadRepo.ExistsInWindow(ctx, key, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if exists {
			observability.RecordLeadMetric(ctx, s.metrics, string(input.LeadType), true)
			return &TrackResult{Deduplicated: true}, nil
		}
	}

	lead := &entities.Lead{
		ID:            uuid.NewString(),
		VendorID:      input.VendorID,
		UserID:        input.CurrentUser,
		LeadType:      input.LeadType,
		ContactMethod: input.ContactMethod,
		Details:       input.Details,
		Status:        entities.LeadStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if input.CurrentUser != nil {
		s.attachCustomerDetails(ctx, lead, *input.CurrentUser)
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrorTypeConflict {
			// Lost the check-then-write race; the lead is already recorded.
			observability.RecordLeadMetric(ctx, s.metrics, string(input.LeadType), true)
			return &TrackResult{Deduplicated: true}, nil
		}
		return nil, err
	}

	observability.RecordLeadMetric(ctx, s.metrics, string(input.LeadType), false)
	s.publish(ctx, entities.LeadEventCreated, lead)

	return &TrackResult{Lead: lead}, nil
}

// attachCustomerDetails denormalizes the customer's display name and phone
// onto the lead so vendor dashboards can render it without a join. Missing
// profiles are not an error.
func (s *LeadService) attachCustomerDetails(ctx context.Context, lead *entities.Lead, userID string) {
	if s.profileRepo == nil {
		return
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if apperrors.TypeOf(err) != apperrors.ErrorTypeNotFound {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to load customer profile for lead")
		}
		return
	}
	if profile == nil {
		return
	}
	lead.CustomerName = profile.DisplayName
	lead.CustomerPhone = profile.Phone
}

// ListByVendor retrieves a vendor's leads, newest first
func (s *LeadService) ListByVendor(ctx context.Context, vendorID string, filter repositories.LeadFilter) ([]*entities.Lead, error) {
	return s.leadRepo.ListByVendor(ctx, vendorID, filter)
}

// UpdateStatus moves a lead to the given status. Any known status may be
// assigned from any other; vendors manage their own pipelines. The event is
// routed with the vendor id stored on the lead, not caller input.
func (s *LeadService) UpdateStatus(ctx context.Context, id string, status entities.LeadStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError("unknown lead status")
	}

	vendorID, err := s.leadRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}

	s.publish(ctx, entities.LeadEventStatusChanged, &entities.Lead{
		ID:       id,
		VendorID: vendorID,
		Status:   status,
	})
	return nil
}

// publish emits a lead event on the bus. Publishing is best-effort; a
// failed publish never fails the write it describes.
func (s *LeadService) publish(ctx context.Context, eventType string, lead *entities.Lead) {
	if s.eventBus == nil {
		return
	}
	event := &entities.LeadEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		VendorID:  lead.VendorID,
		LeadID:    lead.ID,
		LeadType:  lead.LeadType,
		Status:    lead.Status,
		Timestamp: s.now().UTC(),
	}
	if err := s.eventBus.Publish(ctx, LeadEventsChannel, event); err != nil {
		log.Warn().Err(err).Str("lead_id", lead.ID).Msg("Failed to publish lead event")
	}
}
