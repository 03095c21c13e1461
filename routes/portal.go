package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	portalControllers "github.com/AndreaGalia/olio-galia-sub004/controllers/portal"
	"github.com/AndreaGalia/olio-galia-sub004/middleware"
	"github.com/AndreaGalia/olio-galia-sub004/notify"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
)

// SetupPortalRoutes registers the subscription self-service endpoints.
func SetupPortalRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, client *payments.Client, mailer *notify.Mailer, limiter *middleware.EmailLimiter) {
	api := r.Group("/api")
	{
		api.POST("/create-portal-session", portalControllers.CreatePortalSession(db, cfg, mailer, limiter))
		api.GET("/portal-access", portalControllers.PortalAccess(db, client, cfg))
	}
}
