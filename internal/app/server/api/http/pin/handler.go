package pin

import (
	"context"
	"errors"

	"github.com/mgr-punith/password-vault/internal/app/server/api/http/middleware/auth"
	"github.com/mgr-punith/password-vault/internal/domain/pin"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	msgNotSet     = "PIN not set"
	msgInvalidPin = "Invalid PIN"
)

type Handler struct {
	service    pin.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service pin.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.hasOp(), h.has)
	huma.Register(api, h.setOp(), h.set)
	huma.Register(api, h.verifyOp(), h.verify)
}

func (h *Handler) has(ctx context.Context, _ *struct{}) (*hasOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	isSet, err := h.service.Has(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}

	return &hasOutput{Body: hasResponse{IsSet: isSet}}, nil
}

func (h *Handler) set(ctx context.Context, input *pinInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	err := h.service.Set(ctx, userID, input.Body.Pin)
	switch {
	case err == nil:
		return &output{Body: response{Success: true}}, nil
	case errors.Is(err, pin.ErrValidation):
		return nil, huma.Error400BadRequest(pin.ErrValidation.Error())
	case errors.Is(err, pin.ErrAlreadySet):
		return nil, huma.Error409Conflict(pin.ErrAlreadySet.Error())
	default:
		return nil, huma.Error500InternalServerError("Server error")
	}
}

func (h *Handler) verify(ctx context.Context, input *pinInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	err := h.service.Verify(ctx, userID, input.Body.Pin)
	switch {
	case err == nil:
		return &output{Body: response{Success: true}}, nil
	case errors.Is(err, pin.ErrNotSet):
		return nil, huma.Error400BadRequest(msgNotSet)
	case errors.Is(err, pin.ErrMismatch):
		return nil, huma.Error401Unauthorized(msgInvalidPin)
	default:
		return nil, huma.Error500InternalServerError("Server error")
	}
}
