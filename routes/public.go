package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	cartControllers "github.com/AndreaGalia/olio-galia-sub004/controllers/cart"
	productControllers "github.com/AndreaGalia/olio-galia-sub004/controllers/product"
	shopControllers "github.com/AndreaGalia/olio-galia-sub004/controllers/shop"
)

// SetupPublicRoutes registers the unauthenticated storefront endpoints.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	api := r.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", productControllers.GetProducts(db))
			products.GET("/search", productControllers.SearchProducts(db))
			products.GET("/translations/:locale", productControllers.GetTranslations(db))
			products.GET("/:slug", productControllers.GetProductBySlug(db))
		}

		api.POST("/cart/quote", cartControllers.QuoteCart(db, cfg))
		api.GET("/shop-config", shopControllers.GetShopConfig(cfg))
		api.GET("/settings", shopControllers.GetPublicSettings(db))
		api.POST("/feedback", shopControllers.CreateFeedback(db))
	}

	r.GET("/sitemap.xml", shopControllers.GetSitemap(db, cfg))
	r.GET("/robots.txt", shopControllers.GetRobots(cfg))
}
