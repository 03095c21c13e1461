package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Shipping lifecycle
	OrderStatusPending   OrderStatus = "pending"   // Recorded, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed, being prepared
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the goods
	OrderStatusReturned  OrderStatus = "returned"  // Customer returned the goods
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// SessionID is the checkout session id issued by the payment processor.
	// Unique: the reconciliation upsert keys on it.
	SessionID     string        `gorm:"uniqueIndex;not null" json:"session_id"`
	OrderRef      string        `gorm:"uniqueIndex" json:"order_ref"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `gorm:"index" json:"customer_email"`
	CustomerPhone string        `json:"customer_phone"`
	Address       Address       `gorm:"embedded" json:"address"`
	Zone          string        `json:"zone"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      float64       `json:"subtotal"`
	ShippingCost  float64       `json:"shipping_cost"`
	Total         float64       `json:"total"`
	Currency      string        `json:"currency"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// OrderItem captures the price at purchase time; later catalog edits must not
// change recorded orders.
type OrderItem struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	OrderID       uint     `gorm:"index" json:"-"`
	ProductID     string   `json:"product_id"`
	VariantID     string   `json:"variant_id,omitempty"`
	NameIT        string   `json:"name_it"`
	NameEN        string   `json:"name_en"`
	UnitPrice     float64  `json:"unit_price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	WeightGrams   int      `json:"weight_grams"`
	Quantity      int      `json:"quantity"`
}

// Address is embedded in orders and customers.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
