package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/auth"
	"github.com/AndreaGalia/olio-galia-sub004/config"
	adminController "github.com/AndreaGalia/olio-galia-sub004/controllers/admin"
	orderControllers "github.com/AndreaGalia/olio-galia-sub004/controllers/order"
	shopControllers "github.com/AndreaGalia/olio-galia-sub004/controllers/shop"
	"github.com/AndreaGalia/olio-galia-sub004/middleware"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Everything except
// login sits behind the session cookie middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, client *payments.Client) {
	r.POST("/api/admin/login", auth.LoginHandler(db, cfg))

	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAdmin(cfg))
	{
		admin.POST("/logout", auth.LogoutHandler())
		admin.GET("/me", auth.MeHandler(db))
		admin.GET("/stats", adminController.GetStats(db))

		// ─────────── Orders ───────────
		orders := admin.Group("/orders")
		{
			orders.GET("", orderControllers.GetAllOrders(db))
			orders.GET("/ws", orderControllers.OrderWebSocketHandler)
			orders.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
			orders.GET("/:orderID", orderControllers.GetOrderByID(db))
			orders.PUT("/:orderID/status", orderControllers.UpdateOrderStatus(db))
			orders.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatus(db))
		}

		// ─────────── Catalog ───────────
		products := admin.Group("/products")
		{
			products.GET("", adminController.GetAllProducts(db))
			products.PUT("/:id", adminController.UpdateProduct(db))
			products.PUT("/:id/variants/:variantID", adminController.UpdateVariant(db))
		}

		// ─────────── FAQs ───────────
		faqs := admin.Group("/faqs")
		{
			faqs.GET("", adminController.GetFaqs(db))
			faqs.POST("", adminController.CreateFaq(db))
			faqs.POST("/reorder", adminController.ReorderFaqs(db))
			faqs.PUT("/:id", adminController.UpdateFaq(db))
			faqs.DELETE("/:id", adminController.DeleteFaq(db))
			faqs.POST("/:id/toggle", adminController.ToggleFaq(db))
		}

		// ─────────── Customers ───────────
		customers := admin.Group("/customers")
		{
			customers.GET("/search", adminController.SearchCustomers(db))
			customers.GET("/:id", adminController.GetCustomer(db))
			customers.PUT("/:id", adminController.UpdateCustomer(db))
			customers.DELETE("/:id", adminController.DeleteCustomer(db))
		}

		// ─────────── Sellers & payment ledger ───────────
		sellers := admin.Group("/sellers")
		{
			sellers.GET("", adminController.GetSellers(db))
			sellers.POST("", adminController.CreateSeller(db))
			sellers.PUT("/:id", adminController.UpdateSeller(db))
			sellers.DELETE("/:id", adminController.DeleteSeller(db))
			sellers.POST("/:id/payments", adminController.AddSellerPayment(db))
			sellers.DELETE("/:id/payments/:paymentID", adminController.DeleteSellerPayment(db))
		}

		// ─────────── Goals ───────────
		goals := admin.Group("/goals")
		{
			goals.GET("", adminController.GetGoals(db))
			goals.POST("", adminController.CreateGoal(db))
			goals.GET("/active", adminController.GetActiveGoal(db))
			goals.DELETE("/:id", adminController.DeleteGoal(db))
		}

		// ─────────── Subscriptions ───────────
		subs := admin.Group("/subscriptions")
		{
			subs.GET("", adminController.GetSubscriptions(db))
			subs.POST("/:id/permanent-token", adminController.IssuePermanentToken(db))
			subs.POST("/:id/cancel", adminController.CancelSubscription(db, client))
		}

		// ─────────── Settings & feedback ───────────
		admin.GET("/settings/whatsapp", adminController.GetWhatsAppSettings(db))
		admin.PUT("/settings/whatsapp", adminController.UpdateWhatsAppSettings(db))
		admin.GET("/feedbacks", shopControllers.GetFeedbacks(db))
	}
}
