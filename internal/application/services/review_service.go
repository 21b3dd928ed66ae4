package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/providers"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

// invitationTTL is how long a review invitation link stays valid.
const invitationTTL = 7 * 24 * time.Hour

// ReviewService serves vendor reviews and outbound review invitations.
type ReviewService struct {
	reviewRepo     repositories.ReviewRepository
	invitationRepo repositories.ReviewInvitationRepository
	mailer         providers.MailSender
	reviewBaseURL  string
	now            func() time.Time
}

// NewReviewService creates a new review service. mailer may be nil, in
// which case invitations are stored but not emailed.
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	invitationRepo repositories.ReviewInvitationRepository,
	mailer providers.MailSender,
	reviewBaseURL string,
) *ReviewService {
	return &ReviewService{
		reviewRepo:     reviewRepo,
		invitationRepo: invitationRepo,
		mailer:         mailer,
		reviewBaseURL:  reviewBaseURL,
		now:            time.Now,
	}
}

// ListByVendor retrieves a vendor's reviews, newest first
func (s *ReviewService) ListByVendor(ctx context.Context, vendorID string, limit int) ([]*entities.Review, error) {
	return s.reviewRepo.ListByVendor(ctx, vendorID, limit)
}

// InviteInput describes a review invitation to send. At least one of
// CustomerEmail or CustomerPhone must be set.
type InviteInput struct {
	VendorID      string
	BusinessName  string
	CustomerEmail *string
	CustomerPhone *string
}

// Invite creates a tokenized review invitation valid for seven days and,
// when an email address and mailer are available, sends the review link.
// A failed send does not fail the invitation.
func (s *ReviewService) Invite(ctx context.Context, input InviteInput) (*entities.ReviewInvitation, error) {
	if input.VendorID == "" {
		return nil, apperrors.NewValidationError("vendor_id is required")
	}
	if input.CustomerEmail == nil && input.CustomerPhone == nil {
		return nil, apperrors.NewValidationError("customer email or phone is required")
	}

	token, err := newInvitationToken()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to generate invitation token", err)
	}

	now := s.now().UTC()
	invitation := &entities.ReviewInvitation{
		ID:            uuid.NewString(),
		VendorID:      input.VendorID,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Token:         token,
		Status:        entities.InvitationStatusPending,
		ExpiresAt:     now.Add(invitationTTL),
		CreatedAt:     now,
	}

	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, err
	}

	if s.mailer != nil && input.CustomerEmail != nil {
		s.sendInvitationMail(ctx, invitation, input.BusinessName)
	}

	return invitation, nil
}

// ListInvitations retrieves a vendor's invitations, newest first
func (s *ReviewService) ListInvitations(ctx context.Context, vendorID string) ([]*entities.ReviewInvitation, error) {
	return s.invitationRepo.ListByVendor(ctx, vendorID)
}

func (s *ReviewService) sendInvitationMail(ctx context.Context, invitation *entities.ReviewInvitation, businessName string) {
	link := fmt.Sprintf("%s?token=%s", s.reviewBaseURL, invitation.Token)
	subject := "How was your experience?"
	if businessName != "" {
		subject = fmt.Sprintf("How was your experience with %s?", businessName)
	}
	textBody := fmt.Sprintf(
		"Thanks for working with %s. We'd love to hear how it went.\n\nLeave a review: %s\n\nThis link expires in 7 days.",
		businessName, link,
	)
	htmlBody := fmt.Sprintf(
		`<p>Thanks for working with <strong>%s</strong>. We'd love to hear how it went.</p><p><a href="%s">Leave a review</a></p><p>This link expires in 7 days.</p>`,
		businessName, link,
	)

	if err := s.mailer.Send(ctx, *invitation.CustomerEmail, subject, textBody, htmlBody); err != nil {
		log.Warn().Err(err).Str("invitation_id", invitation.ID).Msg("Failed to send review invitation email")
	}
}

func newInvitationToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
