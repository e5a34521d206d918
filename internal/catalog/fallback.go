package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	apperrors "github.com/MoaeadAlhosami/STREETWEER/pkg/errors"
)

// StaticSource serves a fixed in-memory catalog.
type StaticSource struct {
	products   []domain.Product
	categories []domain.Category
	brands     []domain.Brand
}

// NewStaticSource creates a source over the given data.
func NewStaticSource(products []domain.Product, categories []domain.Category, brands []domain.Brand) *StaticSource {
	return &StaticSource{
		products:   products,
		categories: categories,
		brands:     brands,
	}
}

// NewFallbackSource returns the bundled dataset used when the product API is
// unavailable.
func NewFallbackSource() *StaticSource {
	return NewStaticSource(FallbackProducts(), FallbackCategories(), FallbackBrands())
}

// GetProducts implements Source.
func (s *StaticSource) GetProducts(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// GetProduct implements Source.
func (s *StaticSource) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

// GetCategories implements Source.
func (s *StaticSource) GetCategories(context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// GetBrands implements Source.
func (s *StaticSource) GetBrands(context.Context) ([]domain.Brand, error) {
	out := make([]domain.Brand, len(s.brands))
	copy(out, s.brands)
	return out, nil
}

// FallbackProducts returns a fresh copy of the bundled products.
func FallbackProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Minimalist Linen Blazer",
			Slug:        "minimalist-linen-blazer",
			Description: "A lightweight, breathable blazer crafted from premium Italian linen. Perfect for elevated summer layering.",
			Price:       decimal.NewFromInt(245),
			Category:    "Outerwear",
			BrandID:     "1",
			Image:       "/placeholders/photo-b.svg",
			Sizes:       []string{"46", "48", "50", "52", "54"},
			Status:      domain.StatusNew,
			Rating:      &domain.Rating{Rate: 4.9, Count: 24},
		},
		{
			ID:          "2",
			Name:        "Oatmeal Cashmere Crewneck",
			Slug:        "oatmeal-cashmere-crewneck",
			Description: "Sustainably sourced Grade-A cashmere. Exceptionally soft, warm, and built to last a lifetime.",
			Price:       decimal.NewFromInt(180),
			Category:    "Tops",
			BrandID:     "2",
			Image:       "/placeholders/photo-a.svg",
			Sizes:       []string{"S", "M", "L", "XL"},
			Status:      domain.StatusFeatured,
			Rating:      &domain.Rating{Rate: 4.8, Count: 56},
		},
		{
			ID:          "3",
			Name:        "Raw Selvedge Denim",
			Slug:        "raw-selvedge-denim",
			Description: "14oz Japanese selvedge denim. Unwashed and ready to be broken in for a unique patina.",
			Price:       decimal.NewFromInt(165),
			Category:    "Bottoms",
			BrandID:     "1",
			Image:       "/placeholders/photo-b.svg",
			Sizes:       []string{"30", "31", "32", "33", "34", "36"},
			Status:      domain.StatusDefault,
			Rating:      &domain.Rating{Rate: 4.7, Count: 89},
		},
		{
			ID:          "4",
			Name:        "Chelsea Boot in Suede",
			Slug:        "chelsea-boot-in-suede",
			Description: "Handcrafted in Portugal with water-resistant Italian suede and a Goodyear-welted sole.",
			Price:       decimal.NewFromInt(320),
			Category:    "Footwear",
			BrandID:     "2",
			Image:       "/placeholders/photo-a.svg",
			Sizes:       []string{"40", "41", "42", "43", "44", "45"},
			Status:      domain.StatusFeatured,
			Rating:      &domain.Rating{Rate: 4.9, Count: 42},
		},
		{
			ID:          "5",
			Name:        "Silk Slip Dress",
			Slug:        "silk-slip-dress",
			Description: "100% heavy-weight mulberry silk. A timeless silhouette that drapes elegantly for any occasion.",
			Price:       decimal.NewFromInt(195),
			Category:    "Dresses",
			BrandID:     "2",
			Image:       "/placeholders/photo-b.svg",
			Sizes:       []string{"XS", "S", "M", "L"},
			Status:      domain.StatusSale,
			Rating:      &domain.Rating{Rate: 4.6, Count: 31},
		},
		{
			ID:          "6",
			Name:        "Structured Cotton Tote",
			Slug:        "structured-cotton-tote",
			Description: "Heavyweight organic cotton canvas with vegetable-tanned leather handles and internal pockets.",
			Price:       decimal.NewFromInt(85),
			Category:    "Accessories",
			BrandID:     "1",
			Image:       "/placeholders/photo-a.svg",
			Sizes:       []string{"One Size"},
			Status:      domain.StatusDefault,
			Rating:      &domain.Rating{Rate: 4.5, Count: 112},
		},
	}
}

// FallbackCategories returns the bundled categories in display order.
func FallbackCategories() []domain.Category {
	names := []string{"Tops", "Outerwear", "Bottoms", "Footwear", "Dresses", "Accessories"}
	out := make([]domain.Category, len(names))
	for i, n := range names {
		out[i] = domain.Category{ID: n, Name: n}
	}
	return out
}

// FallbackBrands returns the bundled brands.
func FallbackBrands() []domain.Brand {
	return []domain.Brand{
		{ID: "1", Name: "STREETWEER", Slug: "streetweer"},
		{ID: "2", Name: "STREETWEER Atelier", Slug: "streetweer-atelier"},
	}
}
