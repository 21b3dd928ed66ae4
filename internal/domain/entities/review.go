package entities

import "time"

// Review is a customer review left against a vendor profile.
type Review struct {
	ID           string    `json:"id" db:"id"`
	VendorID     string    `json:"vendor_id" db:"vendor_id"`
	UserID       *string   `json:"user_id,omitempty" db:"user_id"`
	ReviewerName string    `json:"reviewer_name" db:"reviewer_name"`
	Rating       int       `json:"rating" db:"rating"`
	Comment      string    `json:"comment" db:"comment"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// InvitationStatus tracks the lifecycle of a review invitation.
type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "pending"
	InvitationStatusCompleted InvitationStatus = "completed"
	InvitationStatusExpired   InvitationStatus = "expired"
)

// ReviewInvitation is a tokenized request a vendor sends a past customer
// asking them to leave a review.
type ReviewInvitation struct {
	ID            string           `json:"id" db:"id"`
	VendorID      string           `json:"vendor_id" db:"vendor_id"`
	CustomerEmail *string          `json:"customer_email,omitempty" db:"customer_email"`
	CustomerPhone *string          `json:"customer_phone,omitempty" db:"customer_phone"`
	Token         string           `json:"token" db:"token"`
	Status        InvitationStatus `json:"status" db:"status"`
	ExpiresAt     time.Time        `json:"expires_at" db:"expires_at"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
}
