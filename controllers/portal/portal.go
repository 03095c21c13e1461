package portalControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	"github.com/AndreaGalia/olio-galia-sub004/middleware"
	"github.com/AndreaGalia/olio-galia-sub004/models"
	"github.com/AndreaGalia/olio-galia-sub004/notify"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
)

// TokenTTL is how long a temporary portal token stays valid.
const TokenTTL = 15 * time.Minute

type CreatePortalSessionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /api/create-portal-session
//
// Issues a single-use portal token and emails the access link. Limited to 3
// requests per email per 10 minutes.
func CreatePortalSession(db *gorm.DB, cfg *config.Config, mailer *notify.Mailer, limiter *middleware.EmailLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePortalSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}

		if !limiter.Allow(req.Email) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			return
		}

		var sub models.Subscription
		err := db.Where("customer_email = ?", req.Email).Order("created_at DESC").First(&sub).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No subscription found for this email"})
			return
		}
		if err != nil {
			log.Println("❌ Failed to look up subscription:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create portal session"})
			return
		}

		token := models.PortalToken{
			Token:     uuid.NewString(),
			Email:     sub.CustomerEmail,
			ExpiresAt: time.Now().Add(TokenTTL),
		}
		if err := db.Create(&token).Error; err != nil {
			log.Println("❌ Failed to store portal token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create portal session"})
			return
		}

		link := fmt.Sprintf("%s/abbonamento?token=%s", cfg.FrontendURL, token.Token)
		html := fmt.Sprintf(
			"<p>Ciao %s,</p><p>gestisci il tuo abbonamento da questo link (valido 15 minuti, utilizzabile una sola volta):</p><p><a href=%q>%s</a></p>",
			sub.CustomerName, link, link,
		)
		if err := mailer.Send(sub.CustomerEmail, "Gestione abbonamento - Olio Galia", html); err != nil {
			log.Println("❌ Failed to send portal link email:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send portal link"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Portal link sent, check your inbox"})
	}
}

// GET /api/portal-access?token=
//
// A permanent per-subscription token wins over the single-use temporary one.
func PortalAccess(db *gorm.DB, client *payments.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
			return
		}

		var sub models.Subscription
		err := db.Where("permanent_token = ? AND permanent_token != ''", tokenStr).First(&sub).Error
		if err == nil {
			redirect(c, client, cfg, sub)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("❌ Failed to check permanent token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Portal access failed"})
			return
		}

		email, ok := claimTempToken(db, tokenStr)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
			return
		}

		if err := db.Where("customer_email = ?", email).Order("created_at DESC").First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No subscription found"})
				return
			}
			log.Println("❌ Failed to load subscription for portal:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Portal access failed"})
			return
		}
		redirect(c, client, cfg, sub)
	}
}

// claimTempToken atomically consumes a temporary token. The conditional
// update makes a second use lose even under concurrent requests.
func claimTempToken(db *gorm.DB, tokenStr string) (string, bool) {
	var token models.PortalToken
	if err := db.Where("token = ?", tokenStr).First(&token).Error; err != nil {
		return "", false
	}

	res := db.Model(&models.PortalToken{}).
		Where("token = ? AND used_at IS NULL AND expires_at > ?", tokenStr, time.Now()).
		Update("used_at", time.Now())
	if res.Error != nil || res.RowsAffected == 0 {
		return "", false
	}
	return token.Email, true
}

func redirect(c *gin.Context, client *payments.Client, cfg *config.Config, sub models.Subscription) {
	url, err := client.CreatePortalSession(sub.StripeCustomerID, cfg.FrontendURL)
	if err != nil {
		log.Println("❌ Failed to create billing portal session:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
