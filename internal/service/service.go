// Package service implements the storefront use cases on top of the cart
// store, the catalog and the event producer.
package service

import (
	"context"

	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
)

// EventPublisher publishes storefront domain events. Publishing is best
// effort: failures are logged by callers and never fail the request.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, sessionID string, items []domain.CartItem) error
	PublishCartCleared(ctx context.Context, sessionID string) error
	PublishCheckoutSubmitted(ctx context.Context, c domain.Confirmation) error
	PublishContactSubmitted(ctx context.Context, m domain.ContactMessage) error
}

// ProductLookup resolves a product by id.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}
