package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/postgres"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

// ProfileAdapter implements the ProfileRepository interface
type ProfileAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProfileAdapter creates a new profile adapter
func NewProfileAdapter(client *postgres.Client) repositories.ProfileRepository {
	return &ProfileAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByUserID retrieves a customer profile by user id
func (a *ProfileAdapter) GetByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	query, args, err := a.db.Select("user_id", "display_name", "phone", "email", "created_at").
		From("profiles").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build select query", err)
	}

	profile := &entities.Profile{}
	var displayName, phone, email sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&profile.UserID,
		&displayName,
		&phone,
		&email,
		&profile.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("profile for user %s not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get profile", err)
	}

	if displayName.Valid {
		profile.DisplayName = &displayName.String
	}
	if phone.Valid {
		profile.Phone = &phone.String
	}
	if email.Valid {
		profile.Email = &email.String
	}

	return profile, nil
}
