// Package remote reads the catalog from the external product API and
// normalizes its responses into domain types.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MoaeadAlhosami/STREETWEER/internal/catalog"
	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	apperrors "github.com/MoaeadAlhosami/STREETWEER/pkg/errors"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/httpclient"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/tracing"
)

const serviceName = "product-api"

// Config configures the product API client.
type Config struct {
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
}

// Source implements catalog.Source against the product API. Any upstream
// failure degrades to the fallback source.
type Source struct {
	client   httpclient.Getter
	baseURL  string
	fallback catalog.Source
	logger   *slog.Logger
}

// New creates a remote source. doer is normally a breaker-wrapped
// httpclient.CircuitBreakerClient.
func New(cfg Config, doer httpclient.Doer, fallback catalog.Source, logger *slog.Logger) *Source {
	header := http.Header{}
	if cfg.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Token)
	}
	return &Source{
		client:   httpclient.HeaderGetter{Doer: doer, Header: header},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		fallback: fallback,
		logger:   logger,
	}
}

func (s *Source) fetch(ctx context.Context, path string) (json.RawMessage, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog", "product-api.fetch",
		attribute.String("url.path", path),
	)
	defer span.End()

	var body json.RawMessage
	if err := httpclient.GetJSON(ctx, s.client, s.baseURL+path, serviceName, &body); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return body, nil
}

func (s *Source) degrade(ctx context.Context, endpoint string, err error) {
	catalog.MarkDegraded(ctx)
	fallbackServed.WithLabelValues(endpoint).Inc()
	s.logger.WarnContext(ctx, "product api unavailable, serving fallback catalog",
		slog.String("endpoint", endpoint),
		slog.String("error", err.Error()),
	)
}

// GetProducts implements catalog.Source.
func (s *Source) GetProducts(ctx context.Context) ([]domain.Product, error) {
	body, err := s.fetch(ctx, "/products")
	if err == nil {
		var products []domain.Product
		if products, err = NormalizeProducts(body); err == nil {
			return products, nil
		}
	}
	s.degrade(ctx, "products", err)
	return s.fallback.GetProducts(ctx)
}

// GetProduct implements catalog.Source. When the API cannot answer, the
// fallback dataset is consulted and NotFound is reported if it lacks id too.
// A fallback hit marks ctx degraded.
func (s *Source) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	body, err := s.fetch(ctx, "/products/"+url.PathEscape(id))
	if err == nil {
		var p *domain.Product
		if p, err = NormalizeProduct(body); err == nil {
			return p, nil
		}
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.degrade(ctx, "product", err)
	}

	p, ferr := s.fallback.GetProduct(ctx, id)
	if ferr != nil {
		if errors.Is(ferr, apperrors.ErrNotFound) {
			return nil, ferr
		}
		return nil, fmt.Errorf("get product %s: %w", id, ferr)
	}
	catalog.MarkDegraded(ctx)
	return p, nil
}

// GetCategories implements catalog.Source.
func (s *Source) GetCategories(ctx context.Context) ([]domain.Category, error) {
	body, err := s.fetch(ctx, "/categories")
	if err == nil {
		var cats []domain.Category
		if cats, err = NormalizeCategories(body); err == nil {
			return cats, nil
		}
	}
	s.degrade(ctx, "categories", err)
	return s.fallback.GetCategories(ctx)
}

// GetBrands implements catalog.Source.
func (s *Source) GetBrands(ctx context.Context) ([]domain.Brand, error) {
	body, err := s.fetch(ctx, "/brands")
	if err == nil {
		var brands []domain.Brand
		if brands, err = NormalizeBrands(body); err == nil {
			return brands, nil
		}
	}
	s.degrade(ctx, "brands", err)
	return s.fallback.GetBrands(ctx)
}
