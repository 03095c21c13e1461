package checkoutControllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	orderControllers "github.com/AndreaGalia/olio-galia-sub004/controllers/order"
	"github.com/AndreaGalia/olio-galia-sub004/models"
	"github.com/AndreaGalia/olio-galia-sub004/notify"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
)

// POST /api/stripe-webhook
//
// Signature verification happens in middleware. Unknown event types are
// acknowledged with 200 so the processor stops retrying them.
func WebhookHandler(db *gorm.DB, client *payments.Client, cfg *config.Config, notifier *notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			return
		}

		var event payments.Event
		if err := json.Unmarshal(body, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed webhook payload"})
			return
		}

		switch event.Type {
		case "checkout.session.completed", "checkout.session.async_payment_succeeded":
			handleSessionCompleted(db, client, cfg, notifier, event)
		case "checkout.session.async_payment_failed":
			handleSessionFailed(db, event)
		case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
			handleSubscriptionEvent(db, event)
		default:
			log.Println("Ignoring webhook event type:", event.Type)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func handleSessionCompleted(db *gorm.DB, client *payments.Client, cfg *config.Config, notifier *notify.Notifier, event payments.Event) {
	var obj struct {
		ID   string `json:"id"`
		Mode string `json:"mode"`
	}
	if err := json.Unmarshal(event.Data.Object, &obj); err != nil || obj.ID == "" {
		log.Println("❌ Webhook session object missing id")
		return
	}
	if obj.Mode == "subscription" {
		return // subscriptions are handled by their own events
	}

	// Re-fetch instead of trusting the embedded object: the same code path as
	// the storefront verify call, and the upsert keeps it idempotent.
	session, err := client.GetCheckoutSession(obj.ID)
	if err != nil {
		log.Println("❌ Webhook failed to fetch session", obj.ID, ":", err)
		return
	}
	order, created, err := RecordOrder(db, cfg, session)
	if err != nil {
		log.Println("❌ Webhook failed to record order for session", obj.ID, ":", err)
		return
	}
	if created {
		orderControllers.BroadcastNewOrder(*order)
		if notifier != nil {
			go notifier.OrderRecorded(db, *order)
		}
	}
}

func handleSessionFailed(db *gorm.DB, event payments.Event) {
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(event.Data.Object, &obj); err != nil || obj.ID == "" {
		return
	}
	if err := db.Model(&models.Order{}).Where("session_id = ?", obj.ID).
		Update("payment_status", models.PaymentStatusFailed).Error; err != nil {
		log.Println("❌ Failed to mark payment failed for session", obj.ID, ":", err)
	}
}

func handleSubscriptionEvent(db *gorm.DB, event payments.Event) {
	var obj struct {
		ID       string `json:"id"`
		Customer string `json:"customer"`
		Status   string `json:"status"`
		Plan     struct {
			Interval string `json:"interval"`
		} `json:"plan"`
		Metadata map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(event.Data.Object, &obj); err != nil || obj.ID == "" {
		log.Println("❌ Webhook subscription object missing id")
		return
	}

	sub := models.Subscription{
		StripeSubscriptionID: obj.ID,
		StripeCustomerID:     obj.Customer,
		CustomerEmail:        obj.Metadata["email"],
		CustomerName:         obj.Metadata["name"],
		Interval:             obj.Plan.Interval,
		Zone:                 obj.Metadata["zone"],
		Status:               obj.Status,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "stripe_subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "interval", "stripe_customer_id", "updated_at"}),
	}).Create(&sub).Error
	if err != nil {
		log.Println("❌ Failed to upsert subscription", obj.ID, ":", err)
	}
}
