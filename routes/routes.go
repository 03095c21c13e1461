package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	"github.com/AndreaGalia/olio-galia-sub004/middleware"
	"github.com/AndreaGalia/olio-galia-sub004/notify"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
)

// SetupRoutes is the single entry point that wires up the public storefront,
// checkout, portal and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	client := payments.NewClient(cfg)
	notifier := notify.NewNotifier(cfg)
	mailer := notify.NewMailer(cfg)
	portalLimiter := middleware.NewEmailLimiter(3, 10*time.Minute)

	SetupPublicRoutes(r, db, cfg)
	SetupCheckoutRoutes(r, db, cfg, client, notifier)
	SetupPortalRoutes(r, db, cfg, client, mailer, portalLimiter)
	SetupAdminRoutes(r, db, cfg, client)
}
