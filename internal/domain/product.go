package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductStatus is the merchandising badge of a product.
type ProductStatus string

const (
	StatusNew      ProductStatus = "new"
	StatusFeatured ProductStatus = "featured"
	StatusSale     ProductStatus = "sale"
	StatusDefault  ProductStatus = "default"
)

// ParseProductStatus maps a raw status to a known value. Anything
// unrecognised becomes StatusDefault.
func ParseProductStatus(s string) ProductStatus {
	switch st := ProductStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusNew, StatusFeatured, StatusSale:
		return st
	default:
		return StatusDefault
	}
}

// Rating is the aggregated customer rating of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog entry after normalization. Price is already resolved
// from the upstream price fields and is never negative.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug,omitempty"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	PrevPrice   *decimal.Decimal `json:"prev_price,omitempty"`
	Category    string           `json:"category,omitempty"`
	CategoryIDs []string         `json:"categories,omitempty"`
	BrandID     string           `json:"brand_id,omitempty"`
	Sizes       []string         `json:"sizes,omitempty"`
	Colors      []string         `json:"colors,omitempty"`
	Image       string           `json:"image,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Status      ProductStatus    `json:"status"`
	Featured    bool             `json:"is_feature,omitempty"`
	Rating      *Rating          `json:"rating,omitempty"`
}

// IsFeatured reports whether the product is promoted either by status or by
// the explicit feature flag.
func (p Product) IsFeatured() bool {
	return p.Status == StatusFeatured || p.Featured
}

// HasSize reports whether size is one of the product's sizes (exact match).
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// InCategory reports whether the product belongs to category, matching the
// category name case-insensitively or one of the category ids exactly.
func (p Product) InCategory(category string) bool {
	if strings.EqualFold(p.Category, category) {
		return true
	}
	for _, id := range p.CategoryIDs {
		if id == category {
			return true
		}
	}
	return false
}

// Category is a catalog category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
}

// Brand is a catalog brand.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}
