package auth

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	"github.com/AndreaGalia/olio-galia-sub004/middleware"
	"github.com/AndreaGalia/olio-galia-sub004/models"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/admin/login
func LoginHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		var admin models.AdminUser
		if err := db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
			// Same response for unknown email and wrong password.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := generateSessionToken(admin.Email, cfg)
		if err != nil {
			log.Println("❌ Failed to sign session token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		maxAge := cfg.SessionDuration * 3600
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", cfg.Mode == "prod", true)
		c.JSON(http.StatusOK, gin.H{"email": admin.Email, "name": admin.Name})
	}
}

// POST /api/admin/logout
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// GET /api/admin/me
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, _ := c.Get("admin_email")
		var admin models.AdminUser
		if err := db.Where("email = ?", email).First(&admin).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": admin.Email, "name": admin.Name})
	}
}

func generateSessionToken(email string, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"exp":   time.Now().Add(time.Duration(cfg.SessionDuration) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// EnsureAdmin creates the configured back-office account on first boot.
func EnsureAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("⚠️ ADMIN_EMAIL/ADMIN_PASSWORD_HASH not set, skipping admin seed")
		return nil
	}
	var count int64
	if err := db.Model(&models.AdminUser{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	admin := models.AdminUser{Email: cfg.AdminEmail, Name: "Admin", PasswordHash: cfg.AdminPassword}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("📝 Seeded admin account: %s", cfg.AdminEmail)
	return nil
}
