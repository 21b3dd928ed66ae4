package entities

import "time"

// Profile holds the customer-facing identity fields kept alongside the
// identity provider's user record.
type Profile struct {
	UserID      string    `json:"user_id" db:"user_id"`
	DisplayName *string   `json:"display_name,omitempty" db:"display_name"`
	Phone       *string   `json:"phone,omitempty" db:"phone"`
	Email       *string   `json:"email,omitempty" db:"email"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
