package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/postgres"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

// VendorAdapter implements the VendorRepository interface
type VendorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewVendorAdapter creates a new vendor adapter
func NewVendorAdapter(client *postgres.Client) repositories.VendorRepository {
	return &VendorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var vendorColumns = []interface{}{
	goqu.I("bp.id"), goqu.I("bp.user_id"), goqu.I("bp.business_name"),
	goqu.I("bp.business_email"), goqu.I("bp.phone"), goqu.I("bp.whatsapp_num"),
	goqu.I("bp.service_id"), goqu.I("s.name").As("service_name"),
	goqu.I("bp.city_id"), goqu.I("c.name").As("city_name"),
	goqu.I("bp.address"), goqu.I("bp.business_details"),
	goqu.I("bp.rating"), goqu.I("bp.review_count"),
	goqu.I("bp.is_premium_member"), goqu.I("bp.membership_end_date"),
	goqu.I("bp.created_at"), goqu.I("bp.updated_at"),
}

func (a *VendorAdapter) baseSelect() *goqu.SelectDataset {
	return a.db.Select(vendorColumns...).
		From(goqu.T("business_profiles").As("bp")).
		LeftJoin(goqu.T("services").As("s"), goqu.On(goqu.Ex{"s.id": goqu.I("bp.service_id")})).
		LeftJoin(goqu.T("cities").As("c"), goqu.On(goqu.Ex{"c.id": goqu.I("bp.city_id")}))
}

// Create creates a new vendor profile
func (a *VendorAdapter) Create(ctx context.Context, vendor *entities.Vendor) error {
	record := goqu.Record{
		"id":                  vendor.ID,
		"user_id":             vendor.UserID,
		"business_name":       vendor.BusinessName,
		"business_email":      vendor.BusinessEmail,
		"phone":               vendor.Phone,
		"whatsapp_num":        vendor.WhatsAppNumber,
		"service_id":          vendor.ServiceID,
		"city_id":             vendor.CityID,
		"address":             vendor.Address,
		"business_details":    vendor.BusinessDetails,
		"rating":              vendor.Rating,
		"review_count":        vendor.ReviewCount,
		"is_premium_member":   vendor.IsPremiumMember,
		"membership_end_date": vendor.MembershipEndDate,
		"created_at":          vendor.CreatedAt,
		"updated_at":          vendor.UpdatedAt,
	}

	query, args, err := a.db.Insert("business_profiles").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create vendor", err)
	}

	return nil
}

// GetByID retrieves a vendor by ID
func (a *VendorAdapter) GetByID(ctx context.Context, id string) (*entities.Vendor, error) {
	query, args, err := a.baseSelect().Where(goqu.Ex{"bp.id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	vendor, err := scanVendor(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("vendor with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get vendor", err)
	}

	return vendor, nil
}

// Update updates a vendor profile
func (a *VendorAdapter) Update(ctx context.Context, vendor *entities.Vendor) error {
	vendor.UpdatedAt = time.Now().UTC()

	record := goqu.Record{
		"business_name":       vendor.BusinessName,
		"business_email":      vendor.BusinessEmail,
		"phone":               vendor.Phone,
		"whatsapp_num":        vendor.WhatsAppNumber,
		"service_id":          vendor.ServiceID,
		"city_id":             vendor.CityID,
		"address":             vendor.Address,
		"business_details":    vendor.BusinessDetails,
		"rating":              vendor.Rating,
		"review_count":        vendor.ReviewCount,
		"is_premium_member":   vendor.IsPremiumMember,
		"membership_end_date": vendor.MembershipEndDate,
		"updated_at":          vendor.UpdatedAt,
	}

	query, args, err := a.db.Update("business_profiles").
		Set(record).
		Where(goqu.Ex{"id": vendor.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update vendor", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("vendor with id %s not found", vendor.ID))
	}

	return nil
}

// List retrieves vendors with filters, ordered by descending rating
func (a *VendorAdapter) List(ctx context.Context, filter repositories.VendorFilter) ([]*entities.Vendor, error) {
	ds := a.baseSelect()

	if filter.CityID != 0 {
		ds = ds.Where(goqu.Ex{"bp.city_id": filter.CityID})
	}
	if filter.ServiceID != 0 {
		ds = ds.Where(goqu.Ex{"bp.service_id": filter.ServiceID})
	}
	if filter.PremiumOnly {
		ds = ds.Where(goqu.Ex{"bp.is_premium_member": true})
	}

	ds = ds.Order(goqu.I("bp.rating").Desc())

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
		return nil, apperrors.NewInternalError("failed to list vendors", err)
	}
	defer rows.Close()

	vendors := []*entities.Vendor{}
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan vendor", err)
		}
		vendors = append(vendors, vendor)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating vendors", err)
	}

	return vendors, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVendor(row rowScanner) (*entities.Vendor, error) {
	vendor := &entities.Vendor{}
	var userID, whatsapp, serviceName, cityName sql.NullString
	var membershipEnd sql.NullTime

	err := row.Scan(
		&vendor.ID,
		&userID,
		&vendor.BusinessName,
		&vendor.BusinessEmail,
		&vendor.Phone,
		&whatsapp,
		&vendor.ServiceID,
		&serviceName,
		&vendor.CityID,
		&cityName,
		&vendor.Address,
		&vendor.BusinessDetails,
		&vendor.Rating,
		&vendor.ReviewCount,
		&vendor.IsPremiumMember,
		&membershipEnd,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	vendor.UserID = userID.String
	vendor.WhatsAppNumber = whatsapp.String
	vendor.ServiceName = serviceName.String
	vendor.CityName = cityName.String
	if membershipEnd.Valid {
		end := membershipEnd.Time
		vendor.MembershipEndDate = &end
	}

	return vendor, nil
}
