package adminController

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

type SellerInput struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	City     string  `json:"city"`
	Notes    string  `json:"notes"`
	TotalDue float64 `json:"total_due"`
}

// GET /api/admin/sellers
func GetSellers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sellers []models.Seller
		if err := db.Preload("Payments").Order("name ASC").Find(&sellers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sellers"})
			return
		}

		type sellerWithBalance struct {
			models.Seller
			Balance float64 `json:"balance"`
		}
		out := make([]sellerWithBalance, 0, len(sellers))
		for _, s := range sellers {
			out = append(out, sellerWithBalance{Seller: s, Balance: s.Balance()})
		}
		c.JSON(http.StatusOK, out)
	}
}

// POST /api/admin/sellers
func CreateSeller(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SellerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Seller name is required"})
			return
		}

		seller := models.Seller{
			Name: input.Name, Email: input.Email, Phone: input.Phone,
			City: input.City, Notes: input.Notes, TotalDue: input.TotalDue,
			Active: true,
		}
		if err := db.Create(&seller).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create seller"})
			return
		}
		c.JSON(http.StatusCreated, seller)
	}
}

// PUT /api/admin/sellers/:id
func UpdateSeller(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var seller models.Seller
		if err := db.First(&seller, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Seller not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch seller"})
			return
		}

		var patch map[string]interface{}
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		allowed := map[string]string{
			"name": "name", "email": "email", "phone": "phone", "city": "city",
			"notes": "notes", "total_due": "total_due", "active": "active",
		}
		updates := map[string]interface{}{}
		for key, col := range allowed {
			if v, ok := patch[key]; ok {
				updates[col] = v
			}
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields provided"})
			return
		}

		if err := db.Model(&seller).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update seller"})
			return
		}
		c.JSON(http.StatusOK, seller)
	}
}

// DELETE /api/admin/sellers/:id
func DeleteSeller(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows int64
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("seller_id = ?", c.Param("id")).
				Delete(&models.SellerPayment{}).Error; err != nil {
				return err
			}
			res := tx.Delete(&models.Seller{}, "id = ?", c.Param("id"))
			rows = res.RowsAffected
			return res.Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete seller"})
			return
		}
		if rows == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Seller not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Seller deleted"})
	}
}

type SellerPaymentInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method"`
	Note   string  `json:"note"`
}

// POST /api/admin/sellers/:id/payments
func AddSellerPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var seller models.Seller
		if err := db.First(&seller, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Seller not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch seller"})
			return
		}

		var input SellerPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount must be positive"})
			return
		}

		payment := models.SellerPayment{
			SellerID: seller.ID,
			Amount:   input.Amount,
			Method:   input.Method,
			Note:     input.Note,
			PaidAt:   time.Now(),
		}
		if err := db.Create(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

// DELETE /api/admin/sellers/:id/payments/:paymentID
func DeleteSellerPayment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Where("seller_id = ?", c.Param("id")).
			Delete(&models.SellerPayment{}, "id = ?", c.Param("paymentID"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
	}
}
