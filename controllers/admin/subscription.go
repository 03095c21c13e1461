package adminController

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
)

// GET /api/admin/subscriptions
func GetSubscriptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var subs []models.Subscription
		if err := query.Find(&subs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
			return
		}
		c.JSON(http.StatusOK, subs)
	}
}

// POST /api/admin/subscriptions/:id/permanent-token
//
// Issues (or rotates) the permanent portal token for a subscription.
func IssuePermanentToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub models.Subscription
		if err := db.First(&sub, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
			return
		}

		token := uuid.NewString()
		if err := db.Model(&sub).Update("permanent_token", token).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"permanent_token": token})
	}
}

// POST /api/admin/subscriptions/:id/cancel
func CancelSubscription(db *gorm.DB, client *payments.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sub models.Subscription
		if err := db.First(&sub, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
			return
		}

		if err := client.CancelSubscription(sub.StripeSubscriptionID); err != nil {
			log.Println("❌ Failed to cancel subscription processor-side:", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable, please retry"})
			return
		}
		if err := db.Model(&sub).Update("status", "canceled").Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled"})
	}
}
