package vault

import (
	"context"
	"errors"

	"github.com/mgr-punith/password-vault/internal/app/server/api/http/middleware/auth"
	"github.com/mgr-punith/password-vault/internal/domain/vault"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    vault.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service vault.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	records, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Server error")
	}
	if records == nil {
		records = []vault.Record{}
	}

	return &listOutput{Body: listResponse{Items: records}}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := h.service.Create(ctx, userID, input.Body.Ciphertext, input.Body.IV)
	if err != nil {
		return nil, mapError(err)
	}

	return &createOutput{Body: createResponse{Success: true, ID: id}}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Update(ctx, userID, input.ID, input.Body.Ciphertext, input.Body.IV); err != nil {
		return nil, mapError(err)
	}

	return &output{Body: response{Success: true}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*output, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, userID, input.ID); err != nil {
		return nil, mapError(err)
	}

	return &output{Body: response{Success: true}}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, vault.ErrInvalidData):
		return huma.Error400BadRequest("Missing or malformed fields")
	case errors.Is(err, vault.ErrNotFound):
		return huma.Error404NotFound("Not found")
	default:
		return huma.Error500InternalServerError("Server error")
	}
}
