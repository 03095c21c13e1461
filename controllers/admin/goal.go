package adminController

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

type GoalInput struct {
	Title        string    `json:"title" binding:"required"`
	TargetAmount float64   `json:"target_amount" binding:"required,gt=0"`
	StartDate    time.Time `json:"start_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
}

// GET /api/admin/goals
func GetGoals(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var goals []models.Goal
		if err := db.Order("start_date DESC").Find(&goals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch goals"})
			return
		}
		c.JSON(http.StatusOK, goals)
	}
}

// POST /api/admin/goals
func CreateGoal(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input GoalInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid goal: " + err.Error()})
			return
		}
		if !input.EndDate.After(input.StartDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
			return
		}

		goal := models.Goal{
			Title:        input.Title,
			TargetAmount: input.TargetAmount,
			StartDate:    input.StartDate,
			EndDate:      input.EndDate,
			Active:       true,
		}
		if err := db.Create(&goal).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create goal"})
			return
		}
		c.JSON(http.StatusCreated, goal)
	}
}

// DELETE /api/admin/goals/:id
func DeleteGoal(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Goal{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete goal"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
	}
}

// GET /api/admin/goals/active
//
// Reports progress of the currently active goal against paid revenue inside
// its window. No active goal is a 404, not a zeroed payload.
func GetActiveGoal(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()

		var goal models.Goal
		err := db.Where("active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
			Order("start_date DESC").First(&goal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active goal"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch goal"})
			return
		}

		var revenue float64
		err = db.Model(&models.Order{}).
			Where("payment_status = ? AND created_at BETWEEN ? AND ?",
				models.PaymentStatusPaid, goal.StartDate, goal.EndDate).
			Select("COALESCE(SUM(total), 0)").Scan(&revenue).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
			return
		}

		c.JSON(http.StatusOK, goal.Progress(revenue, now))
	}
}
