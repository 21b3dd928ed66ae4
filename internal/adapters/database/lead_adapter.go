package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/postgres"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

// pqUniqueViolation is the Postgres error code for unique constraint violations.
const pqUniqueViolation = "23505"

// LeadAdapter implements the LeadRepository interface
type LeadAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLeadAdapter creates a new lead adapter
func NewLeadAdapter(client *postgres.Client) repositories.LeadRepository {
	return &LeadAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var leadColumns = []interface{}{
	"id", "vendor_id", "user_id", "customer_name", "customer_phone",
	"lead_type", "contact_method", "details", "status", "created_at", "updated_at",
}

// Create inserts a new lead. A unique constraint violation is surfaced as a
// CONFLICT AppError so the guard can treat it as an idempotent no-op.
func (a *LeadAdapter) Create(ctx context.Context, lead *entities.Lead) error {
	record := goqu.Record{
		"id":             lead.ID,
		"vendor_id":      lead.VendorID,
		"user_id":        lead.UserID,
		"customer_name":  lead.CustomerName,
		"customer_phone": lead.CustomerPhone,
		"lead_type":      string(lead.LeadType),
		"contact_method": lead.ContactMethod,
		"details":        []byte(lead.Details),
		"status":         string(lead.Status),
		"created_at":     lead.CreatedAt,
		"updated_at":     lead.UpdatedAt,
	}

	query, args, err := a.db.Insert("vendor_leads").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return apperrors.NewConflictError("lead already recorded")
		}
		return apperrors.NewInternalError("failed to create lead", err)
	}

	return nil
}

// ExistsInWindow reports whether a lead matching key was created in [from, to).
func (a *LeadAdapter) ExistsInWindow(ctx context.Context, key repositories.LeadKey, from, to time.Time) (bool, error) {
	ds := a.db.Select("id").
		From("vendor_leads").
		Where(goqu.Ex{
			"vendor_id": key.VendorID,
			"user_id":   key.UserID,
			"lead_type": string(key.LeadType),
		}).
		Where(goqu.C("created_at").Gte(from)).
		Where(goqu.C("created_at").Lt(to)).
		Limit(1)

	if key.ContactMethod != nil {
		ds = ds.Where(goqu.Ex{"contact_method": *key.ContactMethod})
	} else {
		ds = ds.Where(goqu.C("contact_method").IsNull())
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build existence query", err)
	}

	var id string
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewInternalError("failed to check existing leads", err)
	}

	return true, nil
}

// ListByVendor retrieves a vendor's leads, newest first
func (a *LeadAdapter) ListByVendor(ctx context.Context, vendorID string, filter repositories.LeadFilter) ([]*entities.Lead, error) {
	ds := a.db.Select(leadColumns...).
		From("vendor_leads").
		Where(goqu.Ex{"vendor_id": vendorID})

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": string(filter.Status)})
	}
	if filter.Since != nil {
		ds = ds.Where(goqu.C("created_at").Gte(*filter.Since))
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list leads", err)
	}
	defer rows.Close()

	var leads []*entities.Lead
	for rows.Next() {
		lead := &entities.Lead{}
		var userID, customerName, customerPhone, contactMethod sql.NullString
		var details []byte
		var leadType, status string

		err := rows.Scan(
			&lead.ID,
			&lead.VendorID,
			&userID,
			&customerName,
			&customerPhone,
			&leadType,
			&contactMethod,
			&details,
			&status,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan lead", err)
		}

		if userID.Valid {
			lead.UserID = &userID.String
		}
		if customerName.Valid {
			lead.CustomerName = &customerName.String
		}
		if customerPhone.Valid {
			lead.CustomerPhone = &customerPhone.String
		}
		if contactMethod.Valid {
			lead.ContactMethod = &contactMethod.String
		}
		lead.Details = details
		lead.LeadType = entities.LeadType(leadType)
		lead.Status = entities.LeadStatus(status)

		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating leads", err)
	}

	return leads, nil
}

// UpdateStatus sets the status of a lead and returns the stored vendor id
func (a *LeadAdapter) UpdateStatus(ctx context.Context, id string, status entities.LeadStatus) (string, error) {
	query, args, err := a.db.Update("vendor_leads").
		Set(goqu.Record{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": id}).
		Returning("vendor_id").
		ToSQL()
	if err != nil {
		return "", apperrors.NewInternalError("failed to build status update query", err)
	}

	var vendorID string
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&vendorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NewNotFoundError(fmt.Sprintf("lead with id %s not found", id))
		}
		return "", apperrors.NewInternalError("failed to update lead status", err)
	}

	return vendorID, nil
}
