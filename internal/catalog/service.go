package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/pagination"
)

// ProductPage is one page of a filtered product view.
type ProductPage struct {
	Products []domain.Product
	Total    int
	Params   pagination.Params
}

// Service answers catalog queries from a Source.
type Service struct {
	source Source
	logger *slog.Logger
}

// NewService creates a catalog service.
func NewService(source Source, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

// ListProducts filters and sorts the catalog, then returns the requested page.
func (s *Service) ListProducts(ctx context.Context, criteria domain.FilterCriteria, page pagination.Params) (*ProductPage, error) {
	products, err := s.source.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	filtered := Filter(products, criteria)

	s.logger.DebugContext(ctx, "products listed",
		slog.Int("catalog_size", len(products)),
		slog.Int("matched", len(filtered)),
		slog.String("sort", string(domain.ParseSortOption(string(criteria.Sort)))),
	)

	return &ProductPage{
		Products: pagination.Slice(filtered, page),
		Total:    len(filtered),
		Params:   page,
	}, nil
}

// GetProduct returns a single product. Unknown ids yield a NotFound error.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.source.GetProduct(ctx, id)
}

// ListCategories returns the categories in the order the source delivers them.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.source.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// ListBrands returns the brands.
func (s *Service) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.source.GetBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}
