// Package event publishes storefront domain events to Kafka.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	pkgkafka "github.com/MoaeadAlhosami/STREETWEER/pkg/kafka"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/logger"
)

// Kafka topics for storefront events.
var (
	TopicCartUpdated       = pkgkafka.Topic("cart", "updated")
	TopicCartCleared       = pkgkafka.Topic("cart", "cleared")
	TopicCheckoutSubmitted = pkgkafka.Topic("checkout", "submitted")
	TopicContactSubmitted  = pkgkafka.Topic("contact", "submitted")
)

// Aggregate types.
const (
	AggregateTypeCart    = "cart"
	AggregateTypeContact = "contact"
)

// SourceStorefront identifies events originating from this service.
const SourceStorefront = "storefront"

// CartItemData is the item payload within cart and checkout events.
type CartItemData struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string          `json:"session_id"`
	Items     []CartItemData  `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// CustomerData is the contact block of a checkout submission.
type CustomerData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Notes     string `json:"notes,omitempty"`
}

// CheckoutSubmittedData is the payload for a checkout.submitted event.
type CheckoutSubmittedData struct {
	Reference string          `json:"reference"`
	SessionID string          `json:"session_id"`
	UserID    string          `json:"user_id"`
	Customer  CustomerData    `json:"customer"`
	Items     []CartItemData  `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ContactSubmittedData is the payload for a contact.submitted event.
type ContactSubmittedData struct {
	MessageID string `json:"message_id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// publisher is satisfied by *pkgkafka.Producer.
type publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes storefront domain events.
type Producer struct {
	kafka  publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func itemData(items []domain.CartItem) []CartItemData {
	out := make([]CartItemData, len(items))
	for i, it := range items {
		out[i] = CartItemData{
			ProductID: it.ID,
			Name:      it.Name,
			Size:      it.SelectedSize,
			Price:     it.Price,
			Quantity:  it.Quantity,
		}
	}
	return out
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx)).
		WithUserID(logger.UserIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

// PublishCartUpdated publishes a cart.updated event with the full line list.
func (p *Producer) PublishCartUpdated(ctx context.Context, sessionID string, items []domain.CartItem) error {
	summary := domain.Summarize(items)
	return p.publish(ctx, TopicCartUpdated, sessionID, AggregateTypeCart, CartUpdatedData{
		SessionID: sessionID,
		Items:     itemData(items),
		ItemCount: summary.TotalItems,
		Subtotal:  summary.Subtotal,
	})
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	return p.publish(ctx, TopicCartCleared, sessionID, AggregateTypeCart, CartClearedData{SessionID: sessionID})
}

// PublishCheckoutSubmitted publishes a checkout.submitted event.
func (p *Producer) PublishCheckoutSubmitted(ctx context.Context, c domain.Confirmation) error {
	return p.publish(ctx, TopicCheckoutSubmitted, c.SessionID, AggregateTypeCart, CheckoutSubmittedData{
		Reference: c.Reference,
		SessionID: c.SessionID,
		UserID:    c.UserID,
		Customer: CustomerData{
			FirstName: c.Customer.FirstName,
			LastName:  c.Customer.LastName,
			Email:     c.Customer.Email,
			Address:   c.Customer.Address,
			Notes:     c.Customer.Notes,
		},
		Items:     itemData(c.Items),
		ItemCount: c.Summary.TotalItems,
		Subtotal:  c.Summary.Subtotal,
	})
}

// PublishContactSubmitted publishes a contact.submitted event.
func (p *Producer) PublishContactSubmitted(ctx context.Context, m domain.ContactMessage) error {
	return p.publish(ctx, TopicContactSubmitted, m.ID, AggregateTypeContact, ContactSubmittedData{
		MessageID: m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
	})
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) PublishCartUpdated(context.Context, string, []domain.CartItem) error { return nil }
func (Noop) PublishCartCleared(context.Context, string) error { return nil }
func (Noop) PublishCheckoutSubmitted(context.Context, domain.Confirmation) error { return nil }
func (Noop) PublishContactSubmitted(context.Context, domain.ContactMessage) error { return nil }
