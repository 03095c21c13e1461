package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

// ValidLocale reports whether the storefront supports the locale.
func ValidLocale(locale string) bool {
	return locale == "it" || locale == "en"
}

// GET /api/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).Where("active = ?", true)

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		var products []models.Product
		if err := query.Order("sort_order ASC, created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products/:slug?locale=it|en
func GetProductBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := c.DefaultQuery("locale", "it")
		if !ValidLocale(locale) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "locale must be 'it' or 'en'"})
			return
		}

		var product models.Product
		err := db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).Where("slug = ? AND active = ?", c.Param("slug"), true).First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"product":     product,
			"name":        product.Name(locale),
			"description": product.Description(locale),
		})
	}
}

// GET /api/products/translations/:locale
func GetTranslations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := c.Param("locale")
		if !ValidLocale(locale) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "locale must be 'it' or 'en'"})
			return
		}

		var products []models.Product
		if err := db.Where("active = ?", true).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch translations"})
			return
		}

		type translation struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Slug        string `json:"slug"`
		}
		out := make(map[string]translation, len(products))
		for _, p := range products {
			out[p.ID] = translation{Name: p.Name(locale), Description: p.Description(locale), Slug: p.Slug}
		}
		c.JSON(http.StatusOK, out)
	}
}
