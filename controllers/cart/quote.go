package cartControllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	"github.com/AndreaGalia/olio-galia-sub004/models"
	"github.com/AndreaGalia/olio-galia-sub004/shipping"
)

type QuoteRequest struct {
	Items   []Line `json:"items" binding:"required,min=1,dive"`
	Country string `json:"country" binding:"required"`
}

type QuoteResponse struct {
	Summary
	Zone          shipping.Zone `json:"zone"`
	ShippingCost  float64       `json:"shipping_cost"`
	FreeShipping  bool          `json:"free_shipping"`
	Total         float64       `json:"total"`
	Currency      string        `json:"currency"`
}

// CatalogByID fetches all active products (with variants) keyed by id.
func CatalogByID(db *gorm.DB) (map[string]*models.Product, error) {
	var products []models.Product
	if err := db.Preload("Variants").Where("active = ?", true).Find(&products).Error; err != nil {
		return nil, err
	}
	catalog := make(map[string]*models.Product, len(products))
	for i := range products {
		catalog[products[i].ID] = &products[i]
	}
	return catalog, nil
}

// POST /api/cart/quote
func QuoteCart(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	table := shipping.NewTable(cfg.ShippingFlatEU, cfg.ShippingFlatWorld)
	return func(c *gin.Context) {
		var req QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		catalog, err := CatalogByID(db)
		if err != nil {
			log.Println("❌ Failed to load catalog for quote:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute quote"})
			return
		}

		summary := Calculate(req.Items, catalog)
		zone := shipping.ZoneForCountry(req.Country)
		cost := table.Cost(summary.TotalWeightGrams, zone)
		effective := shipping.Effective(cost, summary.Subtotal, cfg.FreeShippingThreshold)

		c.JSON(http.StatusOK, QuoteResponse{
			Summary:      summary,
			Zone:         zone,
			ShippingCost: effective,
			FreeShipping: effective == 0 && cost > 0,
			Total:        summary.Subtotal + effective,
			Currency:     cfg.Currency,
		})
	}
}
