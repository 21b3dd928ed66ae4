package entities

import (
	"encoding/json"
	"time"
)

// LeadType enumerates the contact-intent actions tracked against a vendor.
type LeadType string

const (
	LeadTypeProfileView    LeadType = "profile_view"
	LeadTypeCall           LeadType = "call"
	LeadTypeWhatsApp       LeadType = "whatsapp"
	LeadTypeEmail          LeadType = "email"
	LeadTypePackageInquiry LeadType = "package_inquiry"
)

// Valid reports whether t is a known lead type.
func (t LeadType) Valid() bool {
	switch t {
	case LeadTypeProfileView, LeadTypeCall, LeadTypeWhatsApp, LeadTypeEmail, LeadTypePackageInquiry:
		return true
	}
	return false
}

// LeadStatus tracks the vendor-side progression of a lead.
type LeadStatus string

const (
	LeadStatusPending   LeadStatus = "pending"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQuoted    LeadStatus = "quoted"
	LeadStatusBooked    LeadStatus = "booked"
	LeadStatusRejected  LeadStatus = "rejected"
)

// Valid reports whether s is a known lead status. Vendors may move a lead
// between any two statuses; there is no terminal state.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusPending, LeadStatusContacted, LeadStatusQuoted, LeadStatusBooked, LeadStatusRejected:
		return true
	}
	return false
}

// Lead records a user's contact intent toward a vendor.
type Lead struct {
	ID            string          `json:"id" db:"id"`
	VendorID      string          `json:"vendor_id" db:"vendor_id"`
	UserID        *string         `json:"user_id,omitempty" db:"user_id"`
	CustomerName  *string         `json:"customer_name,omitempty" db:"customer_name"`
	CustomerPhone *string         `json:"customer_phone,omitempty" db:"customer_phone"`
	LeadType      LeadType        `json:"lead_type" db:"lead_type"`
	ContactMethod *string         `json:"contact_method,omitempty" db:"contact_method"`
	Details       json.RawMessage `json:"details,omitempty" db:"details"`
	Status        LeadStatus      `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// LeadEvent is published on the event bus when a lead is recorded or its
// status changes, so dashboard consumers can refresh without polling.
type LeadEvent struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	VendorID  string     `json:"vendor_id"`
	LeadID    string     `json:"lead_id"`
	LeadType  LeadType   `json:"lead_type"`
	Status    LeadStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
}

const (
	LeadEventCreated       = "lead.created"
	LeadEventStatusChanged = "lead.status_changed"
)
