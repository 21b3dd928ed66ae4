package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	"github.com/knotworks/vendorhub/internal/infrastructure/clients/postgres"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

func setupLeadAdapter(t *testing.T) (repositories.LeadRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewLeadAdapter(postgres.NewClientWithDB(mockDB)), mock
}

func TestLeadAdapter_Create(t *testing.T) {
	adapter, mock := setupLeadAdapter(t)

	userID := "user-1"
	method := "phone"
	lead := &entities.Lead{
		ID:            "lead-1",
		VendorID:      "vendor-1",
		UserID:        &userID,
		LeadType:      entities.LeadTypeCall,
		ContactMethod: &method,
		Status:        entities.LeadStatusPending,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO "vendor_leads"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Create(context.Background(), lead)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadAdapter_Create_UniqueViolationIsConflict(t *testing.T) {
	adapter, mock := setupLeadAdapter(t)

	userID := "user-1"
	lead := &entities.Lead{
		ID:        "lead-1",
		VendorID:  "vendor-1",
		UserID:    &userID,
		LeadType:  entities.LeadTypeWhatsApp,
		Status:    entities.LeadStatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO "vendor_leads"`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := adapter.Create(context.Background(), lead)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadAdapter_ExistsInWindow(t *testing.T) {
	from := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	method := "phone"

	tests := []struct {
		name   string
		key    repositories.LeadKey
		rows   *sqlmock.Rows
		expect bool
	}{
		{
			name: "found with contact method",
			key: repositories.LeadKey{
				VendorID:      "vendor-1",
				UserID:        "user-1",
				LeadType:      entities.LeadTypeCall,
				ContactMethod: &method,
			},
			rows:   sqlmock.NewRows([]string{"id"}).AddRow("lead-1"),
			expect: true,
		},
		{
			name: "not found",
			key: repositories.LeadKey{
				VendorID: "vendor-1",
				UserID:   "user-1",
				LeadType: entities.LeadTypeProfileView,
			},
			rows:   sqlmock.NewRows([]string{"id"}),
			expect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, mock := setupLeadAdapter(t)

			mock.ExpectQuery(`SELECT "id" FROM "vendor_leads"`).
				WillReturnRows(tt.rows)

			exists, err := adapter.ExistsInWindow(context.Background(), tt.key, from, to)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLeadAdapter_ExistsInWindow_NullContactMethod(t *testing.T) {
	adapter, mock := setupLeadAdapter(t)

	from := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	key := repositories.LeadKey{
		VendorID: "vendor-1",
		UserID:   "user-1",
		LeadType: entities.LeadTypeProfileView,
	}

	mock.ExpectQuery(`"contact_method" IS NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("lead-1"))

	exists, err := adapter.ExistsInWindow(context.Background(), key, from, from.Add(24*time.Hour))
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadAdapter_ListByVendor(t *testing.T) {
	adapter, mock := setupLeadAdapter(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "vendor_id", "user_id", "customer_name", "customer_phone",
		"lead_type", "contact_method", "details", "status", "created_at", "updated_at",
	}).
		AddRow("lead-2", "vendor-1", "user-2", "Ada", nil, "call", "phone", []byte(`{}`), "pending", now, now).
		AddRow("lead-1", "vendor-1", nil, nil, nil, "profile_view", nil, []byte(`{}`), "pending", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT .+ FROM "vendor_leads" WHERE .+ ORDER BY "created_at" DESC`).
		WillReturnRows(rows)

	leads, err := adapter.ListByVendor(context.Background(), "vendor-1", repositories.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 2)

	assert.Equal(t, "lead-2", leads[0].ID)
	require.NotNil(t, leads[0].UserID)
	assert.Equal(t, "user-2", *leads[0].UserID)
	assert.Equal(t, entities.LeadTypeCall, leads[0].LeadType)

	assert.Nil(t, leads[1].UserID)
	assert.Nil(t, leads[1].ContactMethod)
	assert.Equal(t, entities.LeadTypeProfileView, leads[1].LeadType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadAdapter_UpdateStatus(t *testing.T) {
	adapter, mock := setupLeadAdapter(t)

	mock.ExpectQuery(`UPDATE "vendor_leads" SET .* RETURNING "vendor_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"vendor_id"}).AddRow("vendor-1"))

	vendorID, err := adapter.UpdateStatus(context.Background(), "lead-1", entities.LeadStatusBooked)
	require.NoError(t, err)
	assert.Equal(t, "vendor-1", vendorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadAdapter_UpdateStatus_NotFound(t *testing.T) {
	adapter, mock := setupLeadAdapter(t)

	mock.ExpectQuery(`UPDATE "vendor_leads" SET`).
		WillReturnRows(sqlmock.NewRows([]string{"vendor_id"}))

	_, err := adapter.UpdateStatus(context.Background(), "missing", entities.LeadStatusContacted)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
