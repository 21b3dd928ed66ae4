package entities

import (
	"time"
)

// Vendor represents a wedding vendor's business profile.
type Vendor struct {
	ID                string     `json:"id" db:"id"`
	UserID            string     `json:"user_id,omitempty" db:"user_id"`
	BusinessName      string     `json:"business_name" db:"business_name"`
	BusinessEmail     string     `json:"business_email" db:"business_email"`
	Phone             string     `json:"phone" db:"phone"`
	WhatsAppNumber    string     `json:"whatsapp_num,omitempty" db:"whatsapp_num"`
	ServiceID         int64      `json:"service_id" db:"service_id"`
	ServiceName       string     `json:"service_name" db:"-"`
	CityID            int64      `json:"city_id" db:"city_id"`
	CityName          string     `json:"city_name" db:"-"`
	Address           string     `json:"address" db:"address"`
	BusinessDetails   string     `json:"business_details" db:"business_details"`
	Rating            float64    `json:"rating" db:"rating"`
	ReviewCount       int        `json:"review_count" db:"review_count"`
	IsPremiumMember   bool       `json:"is_premium_member" db:"is_premium_member"`
	MembershipEndDate *time.Time `json:"membership_end_date,omitempty" db:"membership_end_date"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// DiscoverableAt reports whether the vendor is eligible for discovery at the
// given instant: premium membership must be active, and an expiry date, when
// set, must not lie strictly in the past (compared by UTC calendar day).
func (v *Vendor) DiscoverableAt(now time.Time) bool {
	if !v.IsPremiumMember {
		return false
	}
	if v.MembershipEndDate == nil {
		return true
	}
	today := now.UTC().Truncate(24 * time.Hour)
	end := v.MembershipEndDate.UTC().Truncate(24 * time.Hour)
	return !end.Before(today)
}

// City is a reference-list entry.
type City struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Service is a reference-list entry for a vendor service category.
type Service struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
