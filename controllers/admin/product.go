package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

// GET /api/admin/products — includes inactive products.
func GetAllProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		err := db.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).Order("sort_order ASC").Find(&products).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

type ProductPatch struct {
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Stock         *int     `json:"stock"`
	Active        *bool    `json:"active"`
}

// PUT /api/admin/products/:id — stock/price/visibility updates; catalog
// content itself comes from the seed file.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var patch ProductPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if patch.Stock != nil && *patch.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock must not be negative"})
			return
		}
		if patch.Price != nil && *patch.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}

		updates := map[string]interface{}{}
		if patch.Price != nil {
			updates["price"] = *patch.Price
		}
		if patch.OriginalPrice != nil {
			updates["original_price"] = patch.OriginalPrice
		}
		if patch.Stock != nil {
			updates["stock"] = *patch.Stock
		}
		if patch.Active != nil {
			updates["active"] = *patch.Active
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields provided"})
			return
		}

		if err := db.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// PUT /api/admin/products/:id/variants/:variantID
func UpdateVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var variant models.ProductVariant
		err := db.Where("id = ? AND product_id = ?", c.Param("variantID"), c.Param("id")).
			First(&variant).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch variant"})
			return
		}

		var patch ProductPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		if patch.Stock != nil && *patch.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock must not be negative"})
			return
		}
		if patch.Price != nil && *patch.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}

		updates := map[string]interface{}{}
		if patch.Price != nil {
			updates["price"] = *patch.Price
		}
		if patch.OriginalPrice != nil {
			updates["original_price"] = patch.OriginalPrice
		}
		if patch.Stock != nil {
			updates["stock"] = *patch.Stock
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields provided"})
			return
		}

		if err := db.Model(&variant).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update variant"})
			return
		}
		c.JSON(http.StatusOK, variant)
	}
}
