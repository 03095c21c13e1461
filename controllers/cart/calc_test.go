package cartControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

func f64(v float64) *float64 { return &v }

func testCatalog() map[string]*models.Product {
	return map[string]*models.Product{
		"olio-evo": {
			ID:    "olio-evo",
			Price: 12.50,
			Variants: []models.ProductVariant{
				{ID: "500ml", ProductID: "olio-evo", Price: 12.50, WeightGrams: 900},
				{ID: "1l", ProductID: "olio-evo", Price: 22.00, OriginalPrice: f64(25.00), WeightGrams: 1700},
			},
		},
		"miele": {
			ID:          "miele",
			Price:       8.00,
			WeightGrams: 500,
		},
		"taralli": {
			ID:    "taralli",
			Price: 4.50,
			// no weight on record
		},
	}
}

func TestParseItemID(t *testing.T) {
	assert.Equal(t, ItemRef{ProductID: "miele"}, ParseItemID("miele"))
	assert.Equal(t, ItemRef{ProductID: "olio-evo", VariantID: "1l"}, ParseItemID("olio-evo:1l"))
	assert.Equal(t, ItemRef{ProductID: "a", VariantID: "b:c"}, ParseItemID("a:b:c"))
}

func TestCalculateSubtotalAndWeight(t *testing.T) {
	lines := []Line{
		{ItemID: "olio-evo:1l", Quantity: 2},
		{ItemID: "miele", Quantity: 3},
	}

	s := Calculate(lines, testCatalog())

	assert.InDelta(t, 2*22.00+3*8.00, s.Subtotal, 1e-9)
	assert.Equal(t, 2*1700+3*500, s.TotalWeightGrams)
	assert.True(t, s.HasAllWeights)
	assert.Empty(t, s.MissingWeightProductIDs)
}

func TestCalculateSavingsOnlyWhenDiscounted(t *testing.T) {
	discounted := Calculate([]Line{{ItemID: "olio-evo:1l", Quantity: 2}}, testCatalog())
	assert.InDelta(t, 2*(25.00-22.00), discounted.Savings, 1e-9)

	plain := Calculate([]Line{{ItemID: "miele", Quantity: 5}}, testCatalog())
	assert.Zero(t, plain.Savings)
}

func TestCalculateNoSavingsWhenPriceRaisedAboveOriginal(t *testing.T) {
	catalog := testCatalog()
	catalog["miele"].OriginalPrice = f64(7.00) // price later raised to 8.00

	s := Calculate([]Line{{ItemID: "miele", Quantity: 2}}, catalog)

	assert.Zero(t, s.Savings, "savings never go negative")
	assert.InDelta(t, 16.00, s.Subtotal, 1e-9)
}

func TestCalculateSkipsUnknownReferences(t *testing.T) {
	lines := []Line{
		{ItemID: "does-not-exist", Quantity: 1},
		{ItemID: "olio-evo:magnum", Quantity: 1},
		{ItemID: "miele", Quantity: 1},
	}

	s := Calculate(lines, testCatalog())

	assert.InDelta(t, 8.00, s.Subtotal, 1e-9)
	assert.Equal(t, 500, s.TotalWeightGrams)
}

func TestCalculateReportsMissingWeights(t *testing.T) {
	s := Calculate([]Line{{ItemID: "taralli", Quantity: 2}}, testCatalog())

	assert.InDelta(t, 9.00, s.Subtotal, 1e-9)
	assert.Zero(t, s.TotalWeightGrams)
	assert.False(t, s.HasAllWeights)
	assert.Equal(t, []string{"taralli"}, s.MissingWeightProductIDs)
}

func TestCalculateOrderInvariant(t *testing.T) {
	lines := []Line{
		{ItemID: "olio-evo:500ml", Quantity: 1},
		{ItemID: "olio-evo:1l", Quantity: 2},
		{ItemID: "miele", Quantity: 4},
	}
	reversed := []Line{lines[2], lines[1], lines[0]}

	a := Calculate(lines, testCatalog())
	b := Calculate(reversed, testCatalog())

	assert.Equal(t, a.Subtotal, b.Subtotal)
	assert.Equal(t, a.Savings, b.Savings)
	assert.Equal(t, a.TotalWeightGrams, b.TotalWeightGrams)
}

func TestCalculateEmptyCart(t *testing.T) {
	s := Calculate(nil, testCatalog())

	assert.Zero(t, s.Subtotal)
	assert.Zero(t, s.TotalWeightGrams)
	assert.True(t, s.HasAllWeights)
}
