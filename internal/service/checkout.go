package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MoaeadAlhosami/STREETWEER/internal/cart"
	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	apperrors "github.com/MoaeadAlhosami/STREETWEER/pkg/errors"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/validator"
)

// CheckoutInput is the checkout form.
type CheckoutInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address" validate:"required,max=500"`
	Notes     string `json:"notes" validate:"max=1000"`
}

func (in CheckoutInput) trimmed() CheckoutInput {
	return CheckoutInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		Notes:     strings.TrimSpace(in.Notes),
	}
}

// CheckoutService records checkout submissions. It takes no payment and
// creates no order; the bag is cleared once the form is accepted.
type CheckoutService struct {
	carts     *cart.Registry
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts *cart.Registry, publisher EventPublisher, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates the form against the session's bag and returns a
// confirmation. A signed-in user is required.
func (s *CheckoutService) Submit(ctx context.Context, sessionID, userID string, input CheckoutInput) (*domain.Confirmation, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in to check out")
	}

	input = input.trimmed()
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	store, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := store.Items()
	if len(items) == 0 {
		return nil, apperrors.EmptyCart()
	}

	conf := &domain.Confirmation{
		Reference: uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Customer: domain.Customer{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Address:   input.Address,
			Notes:     input.Notes,
		},
		Items:       items,
		Summary:     domain.Summarize(items),
		SubmittedAt: s.now(),
	}

	store.ClearCart(ctx)

	if err := s.publisher.PublishCheckoutSubmitted(ctx, *conf); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.submitted event",
			slog.String("reference", conf.Reference),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout submitted",
		slog.String("reference", conf.Reference),
		slog.Int("item_count", conf.Summary.TotalItems),
		slog.String("subtotal", conf.Summary.Subtotal.StringFixed(2)),
	)

	return conf, nil
}
