package checkoutControllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	orderControllers "github.com/AndreaGalia/olio-galia-sub004/controllers/order"
	"github.com/AndreaGalia/olio-galia-sub004/models"
	"github.com/AndreaGalia/olio-galia-sub004/notify"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
)

// GET /api/order-confirmation?session_id=
//
// The storefront polls this after redirect (1s spacing, 30 attempts). 202
// means "accepted but not recorded yet"; the client keeps polling and
// eventually degrades to a "check your email" message, never an error.
func GetOrderConfirmation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		var order models.Order
		err := db.Preload("Items").Where("session_id = ?", sessionID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusAccepted, gin.H{"status": "processing"})
			return
		}
		if err != nil {
			log.Println("❌ Failed to look up order confirmation:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "recorded", "order": order})
	}
}

// POST /api/verify-checkout-session
//
// The authoritative write path: fetches the session from the processor and
// records the order. Safe to call any number of times for the same session.
func VerifyCheckoutSession(db *gorm.DB, client *payments.Client, cfg *config.Config, notifier *notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			SessionID string `json:"session_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		session, err := client.GetCheckoutSession(req.SessionID)
		if err != nil {
			log.Println("❌ Failed to fetch checkout session:", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not verify payment session"})
			return
		}

		order, created, err := RecordOrder(db, cfg, session)
		if err != nil {
			log.Println("❌ Failed to record order for session", req.SessionID, ":", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record order"})
			return
		}

		if created {
			orderControllers.BroadcastNewOrder(*order)
			if notifier != nil {
				go notifier.OrderRecorded(db, *order)
			}
		}

		c.JSON(http.StatusOK, gin.H{"order": order, "created": created})
	}
}

// RecordOrder normalizes a processor session into an order record and upserts
// it keyed by session id. The unique index is the sole idempotency mechanism:
// concurrent or repeated calls insert at most one row, and stock deduction and
// customer bookkeeping happen only on the call that actually inserted. A
// repeat call whose session has since been paid promotes a pending payment
// status; it never re-runs the side effects.
func RecordOrder(db *gorm.DB, cfg *config.Config, session *payments.CheckoutSession) (*models.Order, bool, error) {
	items, err := parseMetaItems(session.Metadata["items"])
	if err != nil {
		return nil, false, err
	}

	paymentStatus := models.PaymentStatusPending
	if session.PaymentStatus == "paid" {
		paymentStatus = models.PaymentStatusPaid
	}

	subtotal := parseAmount(session.Metadata["subtotal"])
	shippingCost := parseAmount(session.Metadata["shipping"])
	total := float64(session.AmountTotal) / 100
	if total == 0 {
		total = subtotal + shippingCost
	}

	order := models.Order{
		SessionID:     session.ID,
		OrderRef:      generateOrderRef(),
		CustomerName:  session.CustomerDetails.Name,
		CustomerEmail: session.CustomerDetails.Email,
		CustomerPhone: session.CustomerDetails.Phone,
		Address: models.Address{
			Line1:      session.CustomerDetails.Address.Line1,
			Line2:      session.CustomerDetails.Address.Line2,
			City:       session.CustomerDetails.Address.City,
			Province:   session.CustomerDetails.Address.State,
			PostalCode: session.CustomerDetails.Address.PostalCode,
			Country:    session.CustomerDetails.Address.Country,
		},
		Zone:          session.Metadata["zone"],
		Subtotal:      subtotal,
		ShippingCost:  shippingCost,
		Total:         total,
		Currency:      session.Currency,
		Status:        models.OrderStatusPending,
		PaymentStatus: paymentStatus,
	}
	if order.Currency == "" {
		order.Currency = cfg.Currency
	}
	for _, mi := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:     mi.P,
			VariantID:     mi.V,
			UnitPrice:     mi.Pr,
			OriginalPrice: mi.Op,
			WeightGrams:   mi.W,
			Quantity:      mi.Q,
		})
	}
	fillItemNames(db, order.Items)

	created := false
	err = db.Transaction(func(tx *gorm.DB) error {
		// Items are inserted separately: on a conflict gorm would still try to
		// save the association even though the parent row was skipped.
		res := tx.Omit("Items").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).Create(&order)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already recorded. A payment that settled after the first recording
			// (async methods confirm later) still has to flip the stored status.
			if paymentStatus == models.PaymentStatusPaid {
				return tx.Model(&models.Order{}).
					Where("session_id = ? AND payment_status = ?", session.ID, models.PaymentStatusPending).
					Update("payment_status", models.PaymentStatusPaid).Error
			}
			return nil
		}
		created = true

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		if err := tx.Create(&order.Items).Error; err != nil {
			return err
		}
		if err := deductStock(tx, order.Items); err != nil {
			return err
		}
		return upsertCustomer(tx, order)
	})
	if err != nil {
		return nil, false, err
	}

	// Reload by session id so both the inserting and the losing caller return
	// the same canonical record.
	var stored models.Order
	if err := db.Preload("Items").Where("session_id = ?", session.ID).First(&stored).Error; err != nil {
		return nil, false, err
	}
	return &stored, created, nil
}

func parseMetaItems(raw string) ([]metaItem, error) {
	if raw == "" {
		return nil, errors.New("session has no item metadata")
	}
	var items []metaItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("session item metadata is empty")
	}
	return items, nil
}

func fillItemNames(db *gorm.DB, items []models.OrderItem) {
	for i := range items {
		var product models.Product
		if err := db.Select("name_it", "name_en").First(&product, "id = ?", items[i].ProductID).Error; err != nil {
			continue // product removed since purchase, names stay empty
		}
		items[i].NameIT = product.NameIT
		items[i].NameEN = product.NameEN
	}
}

// deductStock decrements stock atomically, clamping at zero. Oversell is
// tolerated: the cart check is soft and the payment already happened.
func deductStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if item.VariantID != "" {
			err := tx.Model(&models.ProductVariant{}).Where("id = ?", item.VariantID).
				UpdateColumn("stock", gorm.Expr(
					"CASE WHEN stock - ? < 0 THEN 0 ELSE stock - ? END",
					item.Quantity, item.Quantity,
				)).Error
			if err != nil {
				return err
			}
			continue
		}
		err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
			UpdateColumn("stock", gorm.Expr(
				"CASE WHEN stock - ? < 0 THEN 0 ELSE stock - ? END",
				item.Quantity, item.Quantity,
			)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func upsertCustomer(tx *gorm.DB, order models.Order) error {
	if order.CustomerEmail == "" {
		return nil
	}
	var customer models.Customer
	err := tx.Where("email = ?", order.CustomerEmail).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			Email:       order.CustomerEmail,
			Name:        order.CustomerName,
			Phone:       order.CustomerPhone,
			Address:     order.Address,
			OrdersCount: 1,
			TotalSpent:  order.Total,
		}
		return tx.Create(&customer).Error
	}
	if err != nil {
		return err
	}
	customer.Name = order.CustomerName
	customer.Phone = order.CustomerPhone
	customer.Address = order.Address
	customer.OrdersCount++
	customer.TotalSpent += order.Total
	return tx.Save(&customer).Error
}

func generateOrderRef() string {
	return time.Now().Format("20060102") + "-" + uuid.NewString()[:8]
}

func parseAmount(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
