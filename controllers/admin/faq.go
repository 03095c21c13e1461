package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

type FaqInput struct {
	QuestionIT string `json:"question_it" binding:"required"`
	QuestionEN string `json:"question_en" binding:"required"`
	AnswerIT   string `json:"answer_it" binding:"required"`
	AnswerEN   string `json:"answer_en" binding:"required"`
	SortOrder  int    `json:"sort_order"`
	Active     *bool  `json:"active"`
}

// GET /api/admin/faqs
func GetFaqs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var faqs []models.Faq
		if err := db.Order("sort_order ASC, id ASC").Find(&faqs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch FAQs"})
			return
		}
		c.JSON(http.StatusOK, faqs)
	}
}

// POST /api/admin/faqs
func CreateFaq(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input FaqInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All bilingual fields are required: " + err.Error()})
			return
		}

		faq := models.Faq{
			QuestionIT: input.QuestionIT,
			QuestionEN: input.QuestionEN,
			AnswerIT:   input.AnswerIT,
			AnswerEN:   input.AnswerEN,
			SortOrder:  input.SortOrder,
			Active:     true,
		}
		if input.Active != nil {
			faq.Active = *input.Active
		}
		if err := db.Create(&faq).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create FAQ"})
			return
		}
		c.JSON(http.StatusCreated, faq)
	}
}

// PUT /api/admin/faqs/:id — partial patch semantics.
func UpdateFaq(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var faq models.Faq
		if err := db.First(&faq, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "FAQ not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch FAQ"})
			return
		}

		var patch map[string]interface{}
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		allowed := map[string]string{
			"question_it": "question_it", "question_en": "question_en",
			"answer_it": "answer_it", "answer_en": "answer_en",
			"sort_order": "sort_order", "active": "active",
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

		if err := db.Model(&faq).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update FAQ"})
			return
		}
		c.JSON(http.StatusOK, faq)
	}
}

// DELETE /api/admin/faqs/:id
func DeleteFaq(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Faq{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete FAQ"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "FAQ not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "FAQ deleted"})
	}
}

// POST /api/admin/faqs/:id/toggle
func ToggleFaq(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var faq models.Faq
		if err := db.First(&faq, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "FAQ not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch FAQ"})
			return
		}
		if err := db.Model(&faq).Update("active", !faq.Active).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle FAQ"})
			return
		}
		c.JSON(http.StatusOK, faq)
	}
}

// POST /api/admin/faqs/reorder — takes the full ordered id list.
func ReorderFaqs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDs []uint `json:"ids" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids list is required"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for pos, id := range req.IDs {
				if err := tx.Model(&models.Faq{}).Where("id = ?", id).
					Update("sort_order", pos).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder FAQs"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "FAQs reordered"})
	}
}
