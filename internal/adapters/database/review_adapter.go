package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/postgres"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListByVendor retrieves a vendor's reviews, newest first
func (a *ReviewAdapter) ListByVendor(ctx context.Context, vendorID string, limit int) ([]*entities.Review, error) {
	ds := a.db.Select("id", "vendor_id", "user_id", "reviewer_name", "rating", "comment", "created_at").
		From("vendor_reviews").
		Where(goqu.Ex{"vendor_id": vendorID}).
		Order(goqu.I("created_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		review := &entities.Review{}
		var userID sql.NullString

		err := rows.Scan(
			&review.ID,
			&review.VendorID,
			&userID,
			&review.ReviewerName,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}

		if userID.Valid {
			review.UserID = &userID.String
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reviews", err)
	}

	return reviews, nil
}

// ReviewInvitationAdapter implements the ReviewInvitationRepository interface
type ReviewInvitationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewInvitationAdapter creates a new review invitation adapter
func NewReviewInvitationAdapter(client *postgres.Client) repositories.ReviewInvitationRepository {
	return &ReviewInvitationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new invitation
func (a *ReviewInvitationAdapter) Create(ctx context.Context, invitation *entities.ReviewInvitation) error {
	record := goqu.Record{
		"id":             invitation.ID,
		"vendor_id":      invitation.VendorID,
		"customer_email": invitation.CustomerEmail,
		"customer_phone": invitation.CustomerPhone,
		"token":          invitation.Token,
		"status":         string(invitation.Status),
		"expires_at":     invitation.ExpiresAt,
		"created_at":     invitation.CreatedAt,
	}

	query, args, err := a.db.Insert("review_invitations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review invitation", err)
	}

	return nil
}

// ListByVendor retrieves a vendor's invitations, newest first
func (a *ReviewInvitationAdapter) ListByVendor(ctx context.Context, vendorID string) ([]*entities.ReviewInvitation, error) {
	query, args, err := a.db.Select("id", "vendor_id", "customer_email", "customer_phone", "token", "status", "expires_at", "created_at").
		From("review_invitations").
		Where(goqu.Ex{"vendor_id": vendorID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list review invitations", err)
	}
	defer rows.Close()

	var invitations []*entities.ReviewInvitation
	for rows.Next() {
		invitation := &entities.ReviewInvitation{}
		var email, phone sql.NullString
		var status string

		err := rows.Scan(
			&invitation.ID,
			&invitation.VendorID,
			&email,
			&phone,
			&invitation.Token,
			&status,
			&invitation.ExpiresAt,
			&invitation.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review invitation", err)
		}

		if email.Valid {
			invitation.CustomerEmail = &email.String
		}
		if phone.Valid {
			invitation.CustomerPhone = &phone.String
		}
		invitation.Status = entities.InvitationStatus(status)

		invitations = append(invitations, invitation)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating review invitations", err)
	}

	return invitations, nil
}
