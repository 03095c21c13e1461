package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

// GET /api/admin/settings/whatsapp
func GetWhatsAppSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := models.GetWhatsAppSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// PUT /api/admin/settings/whatsapp
func UpdateWhatsAppSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.WhatsAppSettings
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings"})
			return
		}
		if input.Enabled && input.Recipient == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recipient is required when enabled"})
			return
		}

		if err := models.SaveWhatsAppSettings(db, input); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
			return
		}
		c.JSON(http.StatusOK, input)
	}
}
