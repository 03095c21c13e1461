package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	checkoutControllers "github.com/AndreaGalia/olio-galia-sub004/controllers/checkout"
	"github.com/AndreaGalia/olio-galia-sub004/middleware"
	"github.com/AndreaGalia/olio-galia-sub004/notify"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
)

// SetupCheckoutRoutes registers session creation, order confirmation polling
// and the processor webhook.
func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, client *payments.Client, notifier *notify.Notifier) {
	api := r.Group("/api")
	{
		api.POST("/create-checkout-session", checkoutControllers.CreateCheckoutSession(db, client, cfg))
		api.GET("/order-confirmation", checkoutControllers.GetOrderConfirmation(db))
		api.POST("/verify-checkout-session", checkoutControllers.VerifyCheckoutSession(db, client, cfg, notifier))

		api.POST("/stripe-webhook",
			middleware.VerifyWebhook(cfg),
			checkoutControllers.WebhookHandler(db, client, cfg, notifier),
		)
	}
}
