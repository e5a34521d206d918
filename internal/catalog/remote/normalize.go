package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/slug"
)

// flexString decodes a JSON string or number into its string form. null
// decodes to the empty string.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// rawProduct accepts every product shape the product API has served.
type rawProduct struct {
	ID          flexString       `json:"id"`
	Title       string           `json:"title"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	PrevPrice   *decimal.Decimal `json:"prev_price"`
	Category    flexString       `json:"category"`
	Categories  []flexString     `json:"categories"`
	BrandID     flexString       `json:"brand_id"`
	Status      flexString       `json:"status"`
	IsFeature   bool             `json:"is_feature"`
	Image       string           `json:"image"`
	Images      []string         `json:"images"`
	Sizes       []string         `json:"sizes"`
	Colors      []string         `json:"colors"`
	Rating      *domain.Rating   `json:"rating"`
}

// resolvePrice applies the price precedence: price, then base_price, else 0.
// Negative values are clamped to 0.
func (r rawProduct) resolvePrice() decimal.Decimal {
	var p decimal.Decimal
	switch {
	case r.Price != nil:
		p = *r.Price
	case r.BasePrice != nil:
		p = *r.BasePrice
	default:
		return decimal.Zero
	}
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// resolveName prefers title over name.
func (r rawProduct) resolveName() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return strings.TrimSpace(r.Name)
}

func (r rawProduct) toDomain() domain.Product {
	name := r.resolveName()
	p := domain.Product{
		ID:          string(r.ID),
		Name:        name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.resolvePrice(),
		PrevPrice:   r.PrevPrice,
		Category:    string(r.Category),
		BrandID:     string(r.BrandID),
		Status:      domain.ParseProductStatus(string(r.Status)),
		Featured:    r.IsFeature,
		Image:       r.Image,
		Images:      r.Images,
		Sizes:       r.Sizes,
		Colors:      r.Colors,
		Rating:      r.Rating,
	}
	if p.Slug == "" {
		p.Slug = slug.Generate(name)
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	for _, c := range r.Categories {
		if c != "" {
			p.CategoryIDs = append(p.CategoryIDs, string(c))
		}
	}
	return p
}

// rawCategory accepts either a bare category name or a category object.
type rawCategory struct {
	ID          flexString `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ParentID    flexString `json:"parent_id"`
}

func (c *rawCategory) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		*c = rawCategory{ID: flexString(name), Name: name}
		return nil
	}
	type plain rawCategory
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = rawCategory(p)
	return nil
}

func (c rawCategory) toDomain() domain.Category {
	id := string(c.ID)
	if id == "" {
		id = c.Name
	}
	return domain.Category{
		ID:          id,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    string(c.ParentID),
	}
}

type rawBrand struct {
	ID   flexString `json:"id"`
	Name string     `json:"name"`
	Slug string     `json:"slug"`
}

func (b rawBrand) toDomain() domain.Brand {
	s := b.Slug
	if s == "" {
		s = slug.Generate(b.Name)
	}
	return domain.Brand{ID: string(b.ID), Name: b.Name, Slug: s}
}

// unwrap strips a {"data": ...} or {"items": ...} envelope if present.
func unwrap(body json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	for _, k := range []string{"data", "items"} {
		if inner, ok := env[k]; ok && len(bytes.TrimSpace(inner)) > 0 && !bytes.Equal(bytes.TrimSpace(inner), []byte("null")) {
			return inner
		}
	}
	return trimmed
}

// NormalizeProducts decodes a product collection response.
func NormalizeProducts(body json.RawMessage) ([]domain.Product, error) {
	var raws []rawProduct
	if err := json.Unmarshal(unwrap(body), &raws); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	out := make([]domain.Product, 0, len(raws))
	for _, r := range raws {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// NormalizeProduct decodes a single product response.
func NormalizeProduct(body json.RawMessage) (*domain.Product, error) {
	var r rawProduct
	if err := json.Unmarshal(unwrap(body), &r); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	if r.ID == "" {
		return nil, fmt.Errorf("decode product: missing id")
	}
	p := r.toDomain()
	return &p, nil
}

// NormalizeCategories decodes a category collection response.
func NormalizeCategories(body json.RawMessage) ([]domain.Category, error) {
	var raws []rawCategory
	if err := json.Unmarshal(unwrap(body), &raws); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	out := make([]domain.Category, 0, len(raws))
	for _, r := range raws {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// NormalizeBrands decodes a brand collection response.
func NormalizeBrands(body json.RawMessage) ([]domain.Brand, error) {
	var raws []rawBrand
	if err := json.Unmarshal(unwrap(body), &raws); err != nil {
		return nil, fmt.Errorf("decode brands: %w", err)
	}
	out := make([]domain.Brand, 0, len(raws))
	for _, r := range raws {
		out = append(out, r.toDomain())
	}
	return out, nil
}
