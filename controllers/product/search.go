package productControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

// GET /api/products/search?q=&locale=
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := c.DefaultQuery("locale", "it")
		if !ValidLocale(locale) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "locale must be 'it' or 'en'"})
			return
		}

		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			c.JSON(http.StatusOK, []models.Product{})
			return
		}

		pattern := "%" + q + "%"
		query := db.Preload("Variants").Where("active = ?", true)
		if locale == "en" {
			query = query.Where("name_en ILIKE ? OR description_en ILIKE ?", pattern, pattern)
		} else {
			query = query.Where("name_it ILIKE ? OR description_it ILIKE ?", pattern, pattern)
		}

		var products []models.Product
		if err := query.Order("sort_order ASC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
