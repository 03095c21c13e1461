package models

import "time"

type Customer struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Email            string  `gorm:"uniqueIndex;not null" json:"email"`
	Name             string  `json:"name"`
	Phone            string  `json:"phone"`
	Address          Address `gorm:"embedded" json:"address"`
	StripeCustomerID string  `gorm:"index" json:"stripe_customer_id,omitempty"`
	OrdersCount      int     `json:"orders_count"`
	TotalSpent       float64 `json:"total_spent"`
	Notes            string  `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
