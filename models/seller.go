package models

import "time"

// Seller is a reseller/point-of-sale the producer supplies directly.
type Seller struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	City      string          `json:"city"`
	Notes     string          `json:"notes"`
	Active    bool            `gorm:"default:true" json:"active"`
	TotalDue  float64         `json:"total_due"` // goods delivered, to be paid
	Payments  []SellerPayment `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SellerPayment is one ledger entry; Amount is always positive.
type SellerPayment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	SellerID uint      `gorm:"index;not null" json:"seller_id"`
	Amount   float64   `gorm:"not null" json:"amount"`
	Method   string    `json:"method"` // e.g. "cash", "transfer"
	Note     string    `json:"note"`
	PaidAt   time.Time `json:"paid_at"`
}

// Balance is what the seller still owes after all recorded payments.
func (s *Seller) Balance() float64 {
	paid := 0.0
	for _, p := range s.Payments {
		paid += p.Amount
	}
	return s.TotalDue - paid
}
