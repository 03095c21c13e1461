package models

import "time"

type Subscription struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// StripeSubscriptionID is the processor-side subscription id (unique key).
	StripeSubscriptionID string `gorm:"uniqueIndex;not null" json:"stripe_subscription_id"`
	StripeCustomerID     string `gorm:"index" json:"stripe_customer_id"`
	CustomerEmail        string `gorm:"index" json:"customer_email"`
	CustomerName         string `json:"customer_name"`
	Interval             string `json:"interval"` // e.g. "month", "quarter"
	Zone                 string `json:"zone"`
	Status               string `json:"status"` // processor status: active, past_due, canceled...
	// PermanentToken, when set, grants portal access without a temporary token.
	PermanentToken string    `gorm:"index" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PortalToken is a single-use credential for the subscription self-service
// portal. It expires 15 minutes after issuance and is invalid once used.
type PortalToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Token     string     `gorm:"uniqueIndex;not null" json:"token"`
	Email     string     `gorm:"index;not null" json:"email"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
