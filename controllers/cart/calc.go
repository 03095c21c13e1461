package cartControllers

import (
	"strings"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

// Line is one cart entry as sent by the storefront.
type Line struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// ItemRef is a parsed composite item id: "productID" or "productID:variantID".
type ItemRef struct {
	ProductID string
	VariantID string
}

func ParseItemID(id string) ItemRef {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return ItemRef{ProductID: id[:i], VariantID: id[i+1:]}
	}
	return ItemRef{ProductID: id}
}

// Summary is the result of pricing a cart against the catalog.
type Summary struct {
	Subtotal                float64  `json:"subtotal"`
	Savings                 float64  `json:"savings"`
	TotalWeightGrams        int      `json:"total_weight_grams"`
	MissingWeightProductIDs []string `json:"missing_weight_product_ids"`
	HasAllWeights           bool     `json:"has_all_weights"`
}

// Calculate prices a cart against the catalog. Lines that reference an
// unknown product or variant are skipped, tolerating stale carts. Pure:
// repeated calls with the same inputs give the same result.
func Calculate(lines []Line, catalog map[string]*models.Product) Summary {
	s := Summary{MissingWeightProductIDs: []string{}}

	for _, line := range lines {
		ref := ParseItemID(line.ItemID)
		product, ok := catalog[ref.ProductID]
		if !ok {
			continue
		}

		price := product.Price
		originalPrice := product.OriginalPrice
		weight := product.WeightGrams

		if ref.VariantID != "" {
			variant := findVariant(product, ref.VariantID)
			if variant == nil {
				continue
			}
			price = variant.Price
			originalPrice = variant.OriginalPrice
			weight = variant.WeightGrams
		}

		qty := float64(line.Quantity)
		s.Subtotal += price * qty
		// savings only when the current price actually undercuts the original
		if originalPrice != nil && *originalPrice > price {
			s.Savings += (*originalPrice - price) * qty
		}
		if weight > 0 {
			s.TotalWeightGrams += weight * line.Quantity
		} else {
			s.MissingWeightProductIDs = append(s.MissingWeightProductIDs, product.ID)
		}
	}

	s.HasAllWeights = len(s.MissingWeightProductIDs) == 0
	return s
}

func findVariant(p *models.Product, variantID string) *models.ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}
