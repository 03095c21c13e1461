package shipping

// Zone classifies a destination for shipping cost lookup.
type Zone string

const (
	ZoneItaly  Zone = "IT"
	ZoneEurope Zone = "EU"
	ZoneWorld  Zone = "WORLD"
)

// Tier maps a [MinGrams, MaxGrams) weight range to a cost. Tiers in a Table
// must be contiguous and non-overlapping, sorted ascending.
type Tier struct {
	MinGrams int     `json:"min_grams"`
	MaxGrams int     `json:"max_grams"`
	Cost     float64 `json:"cost"`
}

// Table holds the domestic weight tiers plus the flat rates for the other
// zones.
type Table struct {
	Domestic  []Tier  `json:"domestic"`
	FlatEU    float64 `json:"flat_eu"`
	FlatWorld float64 `json:"flat_world"`
}

// DefaultTiers is the courier price list for domestic shipments.
func DefaultTiers() []Tier {
	return []Tier{
		{MinGrams: 0, MaxGrams: 2000, Cost: 7.50},
		{MinGrams: 2000, MaxGrams: 5000, Cost: 9.90},
		{MinGrams: 5000, MaxGrams: 10000, Cost: 12.90},
		{MinGrams: 10000, MaxGrams: 20000, Cost: 16.90},
		{MinGrams: 20000, MaxGrams: 30000, Cost: 21.90},
	}
}

// NewTable builds a Table from the domestic tiers and configured flat rates.
func NewTable(flatEU, flatWorld float64) Table {
	return Table{Domestic: DefaultTiers(), FlatEU: flatEU, FlatWorld: flatWorld}
}

// Cost returns the shipping cost for a total cart weight and zone. Lookup is
// total: weights beyond the last domestic tier pay the last tier's cost, and
// unknown zones fall back to the world rate.
func (t Table) Cost(weightGrams int, zone Zone) float64 {
	switch zone {
	case ZoneItaly:
		for _, tier := range t.Domestic {
			if weightGrams >= tier.MinGrams && weightGrams < tier.MaxGrams {
				return tier.Cost
			}
		}
		if n := len(t.Domestic); n > 0 {
			return t.Domestic[n-1].Cost
		}
		return 0
	case ZoneEurope:
		return t.FlatEU
	default:
		return t.FlatWorld
	}
}

// Effective applies the free-shipping threshold on top of a computed cost.
// Kept separate from Cost so the table lookup stays a pure function of
// weight and zone.
func Effective(cost, subtotal, freeThreshold float64) float64 {
	if freeThreshold > 0 && subtotal >= freeThreshold {
		return 0
	}
	return cost
}

// ZoneForCountry maps an ISO country code to a shipping zone.
func ZoneForCountry(code string) Zone {
	switch code {
	case "IT":
		return ZoneItaly
	case "AT", "BE", "BG", "HR", "CY", "CZ", "DK", "EE", "FI", "FR", "DE",
		"GR", "HU", "IE", "LV", "LT", "LU", "MT", "NL", "PL", "PT", "RO",
		"SK", "SI", "ES", "SE":
		return ZoneEurope
	default:
		return ZoneWorld
	}
}
