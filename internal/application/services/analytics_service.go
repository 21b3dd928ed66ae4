package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/knotworks/vendorhub/internal/domain/entities"
	"github.com/knotworks/vendorhub/internal/domain/repositories"
	apperrors "github.com/knotworks/vendorhub/pkg/errors"
)

// AnalyticsPeriod selects the dashboard reporting window.
type AnalyticsPeriod string

const (
	PeriodWeek    AnalyticsPeriod = "week"
	PeriodMonth   AnalyticsPeriod = "month"
	PeriodQuarter AnalyticsPeriod = "quarter"
)

// Valid reports whether p is a known period.
func (p AnalyticsPeriod) Valid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter:
		return true
	}
	return false
}

// TrendPoint is one bucket of the lead-volume trend chart.
type TrendPoint struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LeadTypeBreakdown counts leads per contact channel within the period.
type LeadTypeBreakdown struct {
	ProfileViews     int `json:"profile_views"`
	Calls            int `json:"calls"`
	WhatsApp         int `json:"whatsapp"`
	Emails           int `json:"emails"`
	PackageInquiries int `json:"package_inquiries"`
}

// VendorAnalytics aggregates a vendor's lead activity over a period.
type VendorAnalytics struct {
	Period         AnalyticsPeriod   `json:"period"`
	TotalLeads     int               `json:"total_leads"`
	ConvertedLeads int               `json:"converted_leads"`
	ConversionRate int               `json:"conversion_rate"`
	LeadTypes      LeadTypeBreakdown `json:"lead_types"`
	Trend          []TrendPoint      `json:"trend"`
	AverageRating  float64           `json:"average_rating"`
	ReviewCount    int               `json:"review_count"`
}

// AnalyticsService aggregates dashboard metrics from a vendor's leads.
type AnalyticsService struct {
	leadRepo   repositories.LeadRepository
	vendorRepo repositories.VendorRepository
	now        func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(leadRepo repositories.LeadRepository, vendorRepo repositories.VendorRepository) *AnalyticsService {
	return &AnalyticsService{
		leadRepo:   leadRepo,
		vendorRepo: vendorRepo,
		now:        time.Now,
	}
}

// ForVendor computes lead analytics for a vendor over the given period.
func (s *AnalyticsService) ForVendor(ctx context.Context, vendorID string, period AnalyticsPeriod) (*VendorAnalytics, error) {
	if !period.Valid() {
		return nil, apperrors.NewValidationError("unknown analytics period")
	}

	vendor, err := s.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	since := periodStart(period, now)
	leads, err := s.leadRepo.ListByVendor(ctx, vendorID, repositories.LeadFilter{Since: &since})
	if err != nil {
		return nil, err
	}

	analytics := summarizeLeads(leads, period, now)
	analytics.AverageRating = vendor.Rating
	analytics.ReviewCount = vendor.ReviewCount
	return analytics, nil
}

// periodStart returns the inclusive lower bound of a reporting window.
func periodStart(period AnalyticsPeriod, now time.Time) time.Time {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodQuarter:
		return now.AddDate(0, -3, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// summarizeLeads computes the totals, channel breakdown, conversion rate
// and trend buckets for a set of leads. Conversion counts booked leads.
func summarizeLeads(leads []*entities.Lead, period AnalyticsPeriod, now time.Time) *VendorAnalytics {
	analytics := &VendorAnalytics{
		Period:     period,
		TotalLeads: len(leads),
		Trend:      buildTrend(leads, period, now),
	}

	for _, lead := range leads {
		switch lead.LeadType {
		case entities.LeadTypeProfileView:
			analytics.LeadTypes.ProfileViews++
		case entities.LeadTypeCall:
			analytics.LeadTypes.Calls++
		case entities.LeadTypeWhatsApp:
			analytics.LeadTypes.WhatsApp++
		case entities.LeadTypeEmail:
			analytics.LeadTypes.Emails++
		case entities.LeadTypePackageInquiry:
			analytics.LeadTypes.PackageInquiries++
		}
		if lead.Status == entities.LeadStatusBooked {
			analytics.ConvertedLeads++
		}
	}

	if analytics.TotalLeads > 0 {
		rate := float64(analytics.ConvertedLeads) / float64(analytics.TotalLeads) * 100
		analytics.ConversionRate = int(math.Round(rate))
	}

	return analytics
}

// buildTrend buckets lead counts into 7 daily points for a week, 30 daily
// points for a month, and 12 weekly points for a quarter, oldest first.
func buildTrend(leads []*entities.Lead, period AnalyticsPeriod, now time.Time) []TrendPoint {
	points := 30
	daysPerBucket := 1
	switch period {
	case PeriodWeek:
		points = 7
	case PeriodQuarter:
		points = 12
		daysPerBucket = 7
	}

	trend := make([]TrendPoint, points)
	today := now.Truncate(24 * time.Hour)

	for i := range trend {
		bucketStart := today.AddDate(0, 0, -(points-1-i)*daysPerBucket)
		if period == PeriodWeek {
			trend[i].Label = bucketStart.Format("Mon")
		} else {
			trend[i].Label = fmt.Sprintf("%d/%d", bucketStart.Day(), int(bucketStart.Month()))
		}
	}

	for _, lead := range leads {
		leadDay := lead.CreatedAt.UTC().Truncate(24 * time.Hour)
		diffDays := int(today.Sub(leadDay).Hours() / 24)
		if diffDays < 0 {
			continue
		}
		bucketsBack := diffDays / daysPerBucket
		if bucketsBack >= points {
			continue
		}
		trend[points-1-bucketsBack].Count++
	}

	return trend
}
