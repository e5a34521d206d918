package http

import (
	"log/slog"
	"net/http"

	"github.com/MoaeadAlhosami/STREETWEER/internal/service"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/httputil"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/middleware"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/validator"
)

// CheckoutHandler handles the checkout form.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// Submit handles POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	conf, err := h.service.Submit(ctx, middleware.SessionIDFromContext(ctx), middleware.UserIDFromContext(ctx), req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, conf)
}

// ContactHandler handles the contact form.
type ContactHandler struct {
	service *service.ContactService
	logger  *slog.Logger
}

// NewContactHandler creates a new contact HTTP handler.
func NewContactHandler(svc *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{service: svc, logger: logger}
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.ContactInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	msg, err := h.service.Submit(ctx, middleware.UserIDFromContext(ctx), req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusAccepted, msg)
}
