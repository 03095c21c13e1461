package adminController

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

// GET /api/admin/customers/search?q=
func SearchCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("created_at DESC")
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			pattern := "%" + q + "%"
			query = query.Where(
				"name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
				pattern, pattern, pattern,
			)
		}

		var customers []models.Customer
		if err := query.Limit(100).Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search customers"})
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}

// GET /api/admin/customers/:id
func GetCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
			return
		}

		var orders []models.Order
		db.Preload("Items").Where("customer_email = ?", customer.Email).
			Order("created_at DESC").Find(&orders)

		c.JSON(http.StatusOK, gin.H{"customer": customer, "orders": orders})
	}
}

// PUT /api/admin/customers/:id
func UpdateCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customer models.Customer
		if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customer"})
			return
		}

		var input struct {
			Name  string          `json:"name"`
			Phone string          `json:"phone"`
			Notes string          `json:"notes"`
			Addr  *models.Address `json:"address"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if input.Name != "" {
			customer.Name = input.Name
		}
		if input.Phone != "" {
			customer.Phone = input.Phone
		}
		customer.Notes = input.Notes
		if input.Addr != nil {
			customer.Address = *input.Addr
		}

		if err := db.Save(&customer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

// DELETE /api/admin/customers/:id
func DeleteCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Customer{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
	}
}
