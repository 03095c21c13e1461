package adminController

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

// GET /api/admin/stats
func GetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalOrders, pendingOrders, customers, subscriptions int64
		var revenue float64

		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			log.Println("❌ Failed to compute stats:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&pendingOrders)
		db.Model(&models.Order{}).Where("payment_status = ?", models.PaymentStatusPaid).
			Select("COALESCE(SUM(total), 0)").Scan(&revenue)
		db.Model(&models.Customer{}).Count(&customers)
		db.Model(&models.Subscription{}).Where("status = ?", "active").Count(&subscriptions)

		// Orders that never saw a payment confirmation: the investigable
		// signal for reconciliation gaps.
		var unreconciled int64
		db.Model(&models.Order{}).
			Where("payment_status = ? AND created_at < ?", models.PaymentStatusPending, time.Now().Add(-24*time.Hour)).
			Count(&unreconciled)

		var recent []models.Order
		db.Preload("Items").Order("created_at DESC").Limit(10).Find(&recent)

		c.JSON(http.StatusOK, gin.H{
			"total_orders":         totalOrders,
			"pending_orders":       pendingOrders,
			"revenue":              revenue,
			"customers":            customers,
			"active_subscriptions": subscriptions,
			"unreconciled_orders":  unreconciled,
			"recent_orders":        recent,
		})
	}
}
