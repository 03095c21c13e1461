package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/AndreaGalia/olio-galia-sub004/models"
)

// File is the typed on-disk catalog. Values are plain fields, never
// interpolated strings; environment-dependent settings live in config, not
// here.
type File struct {
	Products []SeedProduct `json:"products"`
}

type SeedProduct struct {
	ID            string        `json:"id"`
	Slug          string        `json:"slug"`
	NameIT        string        `json:"name_it"`
	NameEN        string        `json:"name_en"`
	DescriptionIT string        `json:"description_it"`
	DescriptionEN string        `json:"description_en"`
	Price         float64       `json:"price"`
	OriginalPrice *float64      `json:"original_price"`
	WeightGrams   int           `json:"weight_grams"`
	Stock         int           `json:"stock"`
	Image         string        `json:"image"`
	Category      string        `json:"category"`
	SortOrder     int           `json:"sort_order"`
	Variants      []SeedVariant `json:"variants"`
}

type SeedVariant struct {
	ID            string   `json:"id"`
	NameIT        string   `json:"name_it"`
	NameEN        string   `json:"name_en"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	WeightGrams   int      `json:"weight_grams"`
	Stock         int      `json:"stock"`
	SortOrder     int      `json:"sort_order"`
}

// Load parses and validates the catalog file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	seen := make(map[string]bool)
	slugs := make(map[string]bool)
	for _, p := range f.Products {
		switch {
		case p.ID == "":
			return fmt.Errorf("catalog product with empty id")
		case seen[p.ID]:
			return fmt.Errorf("duplicate catalog product id %q", p.ID)
		case p.Slug == "":
			return fmt.Errorf("catalog product %q has no slug", p.ID)
		case slugs[p.Slug]:
			return fmt.Errorf("duplicate catalog slug %q", p.Slug)
		case p.NameIT == "" || p.NameEN == "":
			return fmt.Errorf("catalog product %q is missing a bilingual name", p.ID)
		case p.Price <= 0 && len(p.Variants) == 0:
			return fmt.Errorf("catalog product %q has no price", p.ID)
		}
		seen[p.ID] = true
		slugs[p.Slug] = true

		variantIDs := make(map[string]bool)
		for _, v := range p.Variants {
			if v.ID == "" {
				return fmt.Errorf("catalog product %q has a variant with empty id", p.ID)
			}
			if variantIDs[v.ID] {
				return fmt.Errorf("duplicate variant id %q on product %q", v.ID, p.ID)
			}
			if v.Price <= 0 {
				return fmt.Errorf("variant %q of product %q has no price", v.ID, p.ID)
			}
			variantIDs[v.ID] = true
		}
	}
	return nil
}

// Seed upserts the catalog into the database. Content fields follow the file;
// stock is only set when the product is first inserted, so back-office stock
// edits survive restarts.
func Seed(db *gorm.DB, f *File) error {
	for _, sp := range f.Products {
		product := models.Product{
			ID:            sp.ID,
			Slug:          sp.Slug,
			NameIT:        sp.NameIT,
			NameEN:        sp.NameEN,
			DescriptionIT: sp.DescriptionIT,
			DescriptionEN: sp.DescriptionEN,
			Price:         sp.Price,
			OriginalPrice: sp.OriginalPrice,
			WeightGrams:   sp.WeightGrams,
			Stock:         sp.Stock,
			Image:         sp.Image,
			Category:      sp.Category,
			Active:        true,
			SortOrder:     sp.SortOrder,
		}

		var existing models.Product
		err := db.First(&existing, "id = ?", sp.ID).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			if err := db.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to insert product %q: %w", sp.ID, err)
			}
		case err != nil:
			return err
		default:
			updates := map[string]interface{}{
				"slug": sp.Slug, "name_it": sp.NameIT, "name_en": sp.NameEN,
				"description_it": sp.DescriptionIT, "description_en": sp.DescriptionEN,
				"price": sp.Price, "original_price": sp.OriginalPrice,
				"weight_grams": sp.WeightGrams, "image": sp.Image,
				"category": sp.Category, "sort_order": sp.SortOrder,
			}
			if err := db.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product %q: %w", sp.ID, err)
			}
		}

		for _, sv := range sp.Variants {
			if err := seedVariant(db, sp.ID, sv); err != nil {
				return err
			}
		}
	}
	log.Printf("✅ Catalog seeded: %d products", len(f.Products))
	return nil
}

func seedVariant(db *gorm.DB, productID string, sv SeedVariant) error {
	variant := models.ProductVariant{
		ID:            sv.ID,
		ProductID:     productID,
		NameIT:        sv.NameIT,
		NameEN:        sv.NameEN,
		Price:         sv.Price,
		OriginalPrice: sv.OriginalPrice,
		WeightGrams:   sv.WeightGrams,
		Stock:         sv.Stock,
		SortOrder:     sv.SortOrder,
	}

	var existing models.ProductVariant
	err := db.First(&existing, "id = ?", sv.ID).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		if err := db.Create(&variant).Error; err != nil {
			return fmt.Errorf("failed to insert variant %q: %w", sv.ID, err)
		}
		return nil
	case err != nil:
		return err
	default:
		updates := map[string]interface{}{
			"name_it": sv.NameIT, "name_en": sv.NameEN,
			"price": sv.Price, "original_price": sv.OriginalPrice,
			"weight_grams": sv.WeightGrams, "sort_order": sv.SortOrder,
		}
		return db.Model(&existing).Updates(updates).Error
	}
}
