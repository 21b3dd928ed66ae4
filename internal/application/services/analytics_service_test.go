package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

func leadAt(leadType entities.LeadType, status entities.LeadStatus, createdAt time.Time) *entities.Lead {
	return &entities.Lead{
		ID:        "lead-" + string(leadType) + createdAt.Format("20060102"),
		VendorID:  "vendor-1",
		LeadType:  leadType,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestAnalyticsService_ForVendor(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	leads := []*entities.Lead{
		leadAt(entities.LeadTypeProfileView, entities.LeadStatusPending, now.AddDate(0, 0, -1)),
		leadAt(entities.LeadTypeCall, entities.LeadStatusBooked, now.AddDate(0, 0, -2)),
		leadAt(entities.LeadTypeWhatsApp, entities.LeadStatusContacted, now.AddDate(0, 0, -2)),
	}

	svc := NewAnalyticsService(
		&fakeLeadRepo{leads: leads},
		&fakeVendorRepo{vendors: []*entities.Vendor{{ID: "vendor-1", Rating: 4.6, ReviewCount: 31}}},
	)
	svc.now = func() time.Time { return now }

	got, err := svc.ForVendor(context.Background(), "vendor-1", PeriodWeek)

	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalLeads)
	assert.Equal(t, 1, got.ConvertedLeads)
	assert.Equal(t, 33, got.ConversionRate)
	assert.Equal(t, 1, got.LeadTypes.ProfileViews)
	assert.Equal(t, 1, got.LeadTypes.Calls)
	assert.Equal(t, 1, got.LeadTypes.WhatsApp)
	assert.Equal(t, 4.6, got.AverageRating)
	assert.Equal(t, 31, got.ReviewCount)
}

func TestAnalyticsService_ForVendor_InvalidPeriod(t *testing.T) {
	svc := NewAnalyticsService(&fakeLeadRepo{}, &fakeVendorRepo{})

	_, err := svc.ForVendor(context.Background(), "vendor-1", "year")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestBuildTrend_WeekBucketsDaily(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	leads := []*entities.Lead{
		leadAt(entities.LeadTypeCall, entities.LeadStatusPending, now),
		leadAt(entities.LeadTypeCall, entities.LeadStatusPending, now.AddDate(0, 0, -1)),
		leadAt(entities.LeadTypeCall, entities.LeadStatusPending, now.AddDate(0, 0, -1)),
		leadAt(entities.LeadTypeCall, entities.LeadStatusPending, now.AddDate(0, 0, -10)),
	}

	trend := buildTrend(leads, PeriodWeek, now)

	require.Len(t, trend, 7)
	assert.Equal(t, 1, trend[6].Count)
	assert.Equal(t, 2, trend[5].Count)
	// The 10-day-old lead falls outside the 7 buckets.
	total := 0
	for _, p := range trend {
		total += p.Count
	}
	assert.Equal(t, 3, total)

	// 2026-03-14 is a Saturday; the last bucket is today.
	assert.Equal(t, "Sat", trend[6].Label)
	assert.Equal(t, "Fri", trend[5].Label)
}

func TestBuildTrend_QuarterBucketsWeekly(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	leads := []*entities.Lead{
		leadAt(entities.LeadTypeCall, entities.LeadStatusPending, now.AddDate(0, 0, -3)),
		leadAt(entities.LeadTypeEmail, entities.LeadStatusPending, now.AddDate(0, 0, -8)),
	}

	trend := buildTrend(leads, PeriodQuarter, now)

	require.Len(t, trend, 12)
	assert.Equal(t, 1, trend[11].Count)
	assert.Equal(t, 1, trend[10].Count)
}

func TestSummarizeLeads_Empty(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	got := summarizeLeads(nil, PeriodMonth, now)

	assert.Equal(t, 0, got.TotalLeads)
	assert.Equal(t, 0, got.ConversionRate)
	assert.Len(t, got.Trend, 30)
}
