package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MoaeadAlhosami/STREETWEER/internal/domain"
	apperrors "github.com/MoaeadAlhosami/STREETWEER/pkg/errors"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/validator"
)

// ContactInput is the contact form.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// ContactService forwards contact form submissions as events.
type ContactService struct {
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewContactService creates a new contact service.
func NewContactService(publisher EventPublisher, logger *slog.Logger) *ContactService {
	return &ContactService{
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit accepts a contact message from a signed-in user. The message is
// only forwarded, so a publish failure is reported as unavailable.
func (s *ContactService) Submit(ctx context.Context, userID string, input ContactInput) (*domain.ContactMessage, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in to contact us")
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	msg := &domain.ContactMessage{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        input.Name,
		Email:       input.Email,
		Message:     input.Message,
		SubmittedAt: s.now(),
	}

	if err := s.publisher.PublishContactSubmitted(ctx, *msg); err != nil {
		return nil, apperrors.ServiceUnavailable("could not send your message, please try again", err)
	}

	s.logger.InfoContext(ctx, "contact message submitted", slog.String("message_id", msg.ID))
	return msg, nil
}
