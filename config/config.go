package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds every environment-derived setting the application needs,
// loaded once at startup. Handlers read from here instead of os.Getenv.
type Config struct {
	Port        string
	Mode        string // "prod", "sandbox" or "dev"
	FrontendURL string

	// Database
	DatabaseURL string // full DSN; wins over the discrete DB_* settings
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string
	StripeAPIURL        string
	SuccessURL          string
	CancelURL           string

	// Shop
	Currency              string
	FreeShippingThreshold float64 // subtotal at or above this ships free
	ShippingFlatEU        float64
	ShippingFlatWorld     float64
	AllowedCountries      []string

	// Admin session
	JWTSecret       string
	AdminEmail      string
	AdminPassword   string // bcrypt hash
	SessionDuration int    // hours

	// Notifications
	EmailAPIKey      string
	EmailAPIURL      string
	EmailFrom        string
	OwnerEmail       string
	WhatsAppAPIURL   string
	WhatsAppToken    string
	WhatsAppPhoneID  string
	CatalogFile      string
}

// Load reads and validates configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		Mode:        strings.ToLower(getenv("APP_MODE", "prod")),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeAPIURL:        getenv("STRIPE_API_URL", "https://api.stripe.com/v1"),
		SuccessURL:          os.Getenv("CHECKOUT_SUCCESS_URL"),
		CancelURL:           os.Getenv("CHECKOUT_CANCEL_URL"),

		Currency:              getenv("SHOP_CURRENCY", "eur"),
		FreeShippingThreshold: getfloat("FREE_SHIPPING_THRESHOLD", 100),
		ShippingFlatEU:        getfloat("SHIPPING_FLAT_EU", 25),
		ShippingFlatWorld:     getfloat("SHIPPING_FLAT_WORLD", 45),
		AllowedCountries:      splitlist(getenv("ALLOWED_COUNTRIES", "IT,FR,DE,ES,AT,BE,NL,PT,CH,GB,US")),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionDuration: getint("ADMIN_SESSION_HOURS", 24),

		EmailAPIKey:     os.Getenv("EMAIL_API_KEY"),
		EmailAPIURL:     getenv("EMAIL_API_URL", "https://api.resend.com/emails"),
		EmailFrom:       getenv("EMAIL_FROM", "ordini@oliogalia.it"),
		OwnerEmail:      os.Getenv("OWNER_EMAIL"),
		WhatsAppAPIURL:  getenv("WHATSAPP_API_URL", "https://graph.facebook.com/v19.0"),
		WhatsAppToken:   os.Getenv("WHATSAPP_TOKEN"),
		WhatsAppPhoneID: os.Getenv("WHATSAPP_PHONE_ID"),
		CatalogFile:     getenv("CATALOG_FILE", "data/catalog.json"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY must be set")
	}
	if cfg.Mode != "prod" && cfg.Mode != "sandbox" && cfg.Mode != "dev" {
		return nil, fmt.Errorf("APP_MODE must be prod, sandbox or dev, got %q", cfg.Mode)
	}
	if cfg.FreeShippingThreshold < 0 {
		return nil, fmt.Errorf("FREE_SHIPPING_THRESHOLD must not be negative")
	}
	return cfg, nil
}

// DSN returns the Postgres connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getfloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitlist(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}
