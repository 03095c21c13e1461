package shopControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	"github.com/AndreaGalia/olio-galia-sub004/models"
	"github.com/AndreaGalia/olio-galia-sub004/shipping"
)

// GET /api/shop-config — everything the storefront needs to price a cart
// client-side before checkout.
func GetShopConfig(cfg *config.Config) gin.HandlerFunc {
	table := shipping.NewTable(cfg.ShippingFlatEU, cfg.ShippingFlatWorld)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"currency":                cfg.Currency,
			"free_shipping_threshold": cfg.FreeShippingThreshold,
			"shipping":                table,
			"allowed_countries":       cfg.AllowedCountries,
		})
	}
}

// GET /api/settings — public feature flags.
func GetPublicSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		whatsapp, err := models.GetWhatsAppSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"whatsapp_enabled": whatsapp.Enabled,
		})
	}
}

type FeedbackInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message" binding:"required"`
	Rating  int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// POST /api/feedback
func CreateFeedback(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input FeedbackInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A message is required"})
			return
		}

		feedback := models.Feedback{
			Name:    input.Name,
			Email:   input.Email,
			Message: input.Message,
			Rating:  input.Rating,
		}
		if err := db.Create(&feedback).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Thank you for your feedback"})
	}
}

// GET /api/admin/feedbacks
func GetFeedbacks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var feedbacks []models.Feedback
		if err := db.Order("created_at DESC").Find(&feedbacks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedbacks"})
			return
		}
		c.JSON(http.StatusOK, feedbacks)
	}
}
