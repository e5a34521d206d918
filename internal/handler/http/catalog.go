package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MoaeadAlhosami/STREETWEER/internal/catalog"
	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/httputil"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/pagination"
)

// CatalogHandler handles HTTP requests for catalog endpoints.
type CatalogHandler struct {
	service *catalog.Service
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *catalog.Service, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// criteriaFromQuery reads the filter criteria. Unparseable prices are ignored
// and unknown sort values fall back to featured.
func criteriaFromQuery(q url.Values) domain.FilterCriteria {
	return domain.FilterCriteria{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Size:     q.Get("size"),
		Query:    q.Get("q"),
		Sort:     domain.ParseSortOption(q.Get("sort")),
		MinPrice: parsePrice(q.Get("min_price")),
		MaxPrice: parsePrice(q.Get("max_price")),
	}
}

func parsePrice(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListProducts(r.Context(), criteriaFromQuery(r.URL.Query()), pagination.FromRequest(r))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK,
		httputil.NewPaginatedResponse(page.Products, page.Total, page.Params.Page, page.Params.PerPage))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, p)
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	httputil.WriteData(w, http.StatusOK, cats)
}

// ListBrands handles GET /api/v1/brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if brands == nil {
		brands = []domain.Brand{}
	}
	httputil.WriteData(w, http.StatusOK, brands)
}
