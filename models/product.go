package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            string  `gorm:"primaryKey" json:"id"`
	Slug          string  `gorm:"uniqueIndex;not null" json:"slug"`
	NameIT        string  `gorm:"not null" json:"name_it"`
	NameEN        string  `gorm:"not null" json:"name_en"`
	DescriptionIT string  `json:"description_it"`
	DescriptionEN string  `json:"description_en"`
	Price         float64 `gorm:"not null" json:"price"`
	// OriginalPrice is the pre-discount price; nil when the product is not on offer.
	OriginalPrice *float64         `json:"original_price,omitempty"`
	WeightGrams   int              `json:"weight_grams"` // 0 = weight unknown
	Stock         int              `json:"stock"`
	InStock       bool             `gorm:"-" json:"in_stock"`
	Image         string           `json:"image"`
	Category      string           `gorm:"index" json:"category"`
	Active        bool             `gorm:"default:true;index" json:"active"`
	SortOrder     int              `json:"sort_order"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductVariant is a priced/stocked sub-unit of a product (e.g. bottle size).
type ProductVariant struct {
	ID            string   `gorm:"primaryKey" json:"id"`
	ProductID     string   `gorm:"index;not null" json:"product_id"`
	NameIT        string   `json:"name_it"`
	NameEN        string   `json:"name_en"`
	Price         float64  `gorm:"not null" json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	WeightGrams   int      `json:"weight_grams"`
	Stock         int      `json:"stock"`
	InStock       bool     `gorm:"-" json:"in_stock"`
	SortOrder     int      `json:"sort_order"`
}

func (p *Product) AfterFind(*gorm.DB) error {
	p.InStock = p.Stock > 0
	return nil
}

func (v *ProductVariant) AfterFind(*gorm.DB) error {
	v.InStock = v.Stock > 0
	return nil
}

// Name returns the localized product name.
func (p *Product) Name(locale string) string {
	if locale == "en" {
		return p.NameEN
	}
	return p.NameIT
}

// Description returns the localized product description.
func (p *Product) Description(locale string) string {
	if locale == "en" {
		return p.DescriptionEN
	}
	return p.DescriptionIT
}
