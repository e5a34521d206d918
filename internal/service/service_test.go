package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/MoaeadAlhosami/STREETWEER/internal/cart"
	"github.com/MoaeadAlhosami/STREETWEER/internal/catalog"
	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	"github.com/MoaeadAlhosami/STREETWEER/internal/kvstore"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/logger"
)

// --- Mock Publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishCartUpdated(ctx context.Context, sessionID string, items []domain.CartItem) error {
	return m.Called(ctx, sessionID, items).Error(0)
}

func (m *mockPublisher) PublishCartCleared(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *mockPublisher) PublishCheckoutSubmitted(ctx context.Context, c domain.Confirmation) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockPublisher) PublishContactSubmitted(ctx context.Context, msg domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

// --- Test Helpers ---

type fixture struct {
	kv        *kvstore.Memory
	carts     *cart.Registry
	publisher *mockPublisher
	cart      *CartService
	checkout  *CheckoutService
	contact   *ContactService
}

func newFixture() *fixture {
	l := logger.Discard()
	kv := kvstore.NewMemory()
	carts := cart.NewRegistry(kv, 0, l)
	pub := new(mockPublisher)
	return &fixture{
		kv:        kv,
		carts:     carts,
		publisher: pub,
		cart:      NewCartService(carts, catalog.NewFallbackSource(), pub, l),
		checkout:  NewCheckoutService(carts, pub, l),
		contact:   NewContactService(pub, l),
	}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
