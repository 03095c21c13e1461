package checkoutControllers

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/config"
	cartControllers "github.com/AndreaGalia/olio-galia-sub004/controllers/cart"
	"github.com/AndreaGalia/olio-galia-sub004/payments"
	"github.com/AndreaGalia/olio-galia-sub004/shipping"
)

type CreateSessionRequest struct {
	Items   []cartControllers.Line `json:"items" binding:"required,min=1,dive"`
	Email   string                 `json:"email" binding:"required,email"`
	Country string                 `json:"country" binding:"required"`
	Locale  string                 `json:"locale"`
}

// metaItem is the per-line snapshot carried in session metadata so the
// reconciler can rebuild the order without re-reading prices.
type metaItem struct {
	P  string   `json:"p"`            // product id
	V  string   `json:"v,omitempty"`  // variant id
	Q  int      `json:"q"`            // quantity
	Pr float64  `json:"pr"`           // unit price at purchase
	Op *float64 `json:"op,omitempty"` // original price at purchase
	W  int      `json:"w"`            // unit weight grams
}

// POST /api/create-checkout-session
func CreateCheckoutSession(db *gorm.DB, client *payments.Client, cfg *config.Config) gin.HandlerFunc {
	table := shipping.NewTable(cfg.ShippingFlatEU, cfg.ShippingFlatWorld)
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		locale := req.Locale
		if locale != "en" {
			locale = "it"
		}
		if !allowedCountry(cfg, req.Country) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "We do not ship to this country"})
			return
		}

		catalog, err := cartControllers.CatalogByID(db)
		if err != nil {
			log.Println("❌ Failed to load catalog for checkout:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
			return
		}

		summary := cartControllers.Calculate(req.Items, catalog)
		if summary.Subtotal <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty or references unknown products"})
			return
		}

		zone := shipping.ZoneForCountry(req.Country)
		shippingCost := shipping.Effective(
			table.Cost(summary.TotalWeightGrams, zone),
			summary.Subtotal,
			cfg.FreeShippingThreshold,
		)

		var sessionItems []payments.SessionLineItem
		var metaItems []metaItem
		for _, line := range req.Items {
			ref := cartControllers.ParseItemID(line.ItemID)
			product, ok := catalog[ref.ProductID]
			if !ok {
				continue // stale cart reference, already excluded from totals
			}
			name := product.Name(locale)
			price := product.Price
			originalPrice := product.OriginalPrice
			weight := product.WeightGrams
			if ref.VariantID != "" {
				found := false
				for i := range product.Variants {
					if product.Variants[i].ID == ref.VariantID {
						v := &product.Variants[i]
						name += " - " + v.NameIT
						if locale == "en" {
							name = product.Name(locale) + " - " + v.NameEN
						}
						price = v.Price
						originalPrice = v.OriginalPrice
						weight = v.WeightGrams
						found = true
						break
					}
				}
				if !found {
					continue
				}
			}
			sessionItems = append(sessionItems, payments.SessionLineItem{
				Name:       name,
				AmountCent: toCents(price),
				Quantity:   line.Quantity,
			})
			metaItems = append(metaItems, metaItem{
				P: ref.ProductID, V: ref.VariantID, Q: line.Quantity,
				Pr: price, Op: originalPrice, W: weight,
			})
		}

		rawItems, err := json.Marshal(metaItems)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
			return
		}

		session, err := client.CreateCheckoutSession(payments.CreateSessionParams{
			Items:         sessionItems,
			ShippingCent:  toCents(shippingCost),
			Currency:      cfg.Currency,
			CustomerEmail: req.Email,
			SuccessURL:    cfg.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:     cfg.CancelURL,
			Metadata: map[string]string{
				"items":    string(rawItems),
				"zone":     string(zone),
				"country":  req.Country,
				"subtotal": formatAmount(summary.Subtotal),
				"shipping": formatAmount(shippingCost),
			},
		})
		if err != nil {
			log.Println("❌ Failed to create checkout session:", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable, please retry"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"session_id": session.ID, "url": session.URL})
	}
}

func allowedCountry(cfg *config.Config, code string) bool {
	for _, c := range cfg.AllowedCountries {
		if c == code {
			return true
		}
	}
	return false
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
