package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MoaeadAlhosami/STREETWEER/internal/cart"
	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	apperrors "github.com/MoaeadAlhosami/STREETWEER/pkg/errors"
)

// AddItemInput holds the parameters for adding a product to the cart.
// A zero quantity means one. Quantities are bounded at 999 per request.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"gte=0,max=999"`
	Size      string `json:"size" validate:"max=32"`
}

// UpdateQuantityInput holds the new quantity of a line. Values below one are
// clamped to one by the store.
type UpdateQuantityInput struct {
	Quantity int    `json:"quantity" validate:"max=999"`
	Size     string `json:"size" validate:"max=32"`
}

// CartView is the cart as returned to clients.
type CartView struct {
	Items   []domain.CartItem `json:"items"`
	Summary domain.Summary    `json:"summary"`
}

func newCartView(items []domain.CartItem) *CartView {
	return &CartView{Items: items, Summary: domain.Summarize(items)}
}

// CartService implements the cart use cases for a session.
type CartService struct {
	carts     *cart.Registry
	products  ProductLookup
	publisher EventPublisher
	logger    *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts *cart.Registry, products ProductLookup, publisher EventPublisher, logger *slog.Logger) *CartService {
	return &CartService{
		carts:     carts,
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// GetCart returns the session's cart.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	store, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newCartView(store.Items()), nil
}

// GetSummary returns only the totals of the session's cart.
func (s *CartService) GetSummary(ctx context.Context, sessionID string) (domain.Summary, error) {
	store, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	return store.Summary(), nil
}

// AddItem looks the product up in the catalog and adds it to the cart. The
// size is not checked against the product's sizes.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartView, error) {
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	product, err := s.products.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("look up product: %w", err)
	}

	store, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := store.AddItem(ctx, *product, input.Quantity, input.Size)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("product_id", input.ProductID),
		slog.String("size", input.Size),
		slog.Int("quantity", input.Quantity),
	)
	s.publishUpdated(ctx, sessionID, items)

	return newCartView(items), nil
}

// UpdateQuantity sets the quantity of a line. Unknown lines are ignored.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, input UpdateQuantityInput) (*CartView, error) {
	store, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := store.UpdateQty(ctx, productID, input.Quantity, input.Size)
	s.publishUpdated(ctx, sessionID, items)

	return newCartView(items), nil
}

// RemoveItem deletes a line. Unknown lines are ignored.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID, size string) (*CartView, error) {
	store, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := store.RemoveItem(ctx, productID, size)
	s.publishUpdated(ctx, sessionID, items)

	return newCartView(items), nil
}

// ClearCart empties the session's cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*CartView, error) {
	store, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := store.ClearCart(ctx)
	if err := s.publisher.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("error", err.Error()),
		)
	}

	return newCartView(items), nil
}

func (s *CartService) publishUpdated(ctx context.Context, sessionID string, items []domain.CartItem) {
	if err := s.publisher.PublishCartUpdated(ctx, sessionID, items); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("error", err.Error()),
		)
	}
}
