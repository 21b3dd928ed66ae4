package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/postgres"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

// ReferenceAdapter implements the ReferenceRepository interface over the
// cities and services tables.
type ReferenceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReferenceAdapter creates a new reference adapter
func NewReferenceAdapter(client *postgres.Client) repositories.ReferenceRepository {
	return &ReferenceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListCities returns all cities, sorted alphabetically
func (a *ReferenceAdapter) ListCities(ctx context.Context) ([]entities.City, error) {
	query, args, err := a.db.Select("id", "name").
		From("cities").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build cities query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list cities", err)
	}
	defer rows.Close()

	cities := []entities.City{}
	for rows.Next() {
		var city entities.City
		if err := rows.Scan(&city.ID, &city.Name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan city", err)
		}
		cities = append(cities, city)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating cities", err)
	}

	return cities, nil
}

// ListServices returns all service categories, sorted alphabetically
func (a *ReferenceAdapter) ListServices(ctx context.Context) ([]entities.Service, error) {
	query, args, err := a.db.Select("id", "name").
		From("services").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build services query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list services", err)
	}
	defer rows.Close()

	services := []entities.Service{}
	for rows.Next() {
		var service entities.Service
		if err := rows.Scan(&service.ID, &service.Name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan service", err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating services", err)
	}

	return services, nil
}
