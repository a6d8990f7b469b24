package account

import (
	"context"
	"errors"

	"github.com/mgr-punith/password-vault/internal/domain/session"
	"github.com/mgr-punith/password-vault/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.signupOp(), h.signup)
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) signup(ctx context.Context, input *credentialsInput) (*signupOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	switch {
	case errors.Is(err, user.ErrInvalidInput):
		return nil, huma.Error400BadRequest(err.Error())
	case errors.Is(err, user.ErrExists):
		return nil, huma.Error409Conflict("User exists")
	case err != nil:
		return nil, huma.Error500InternalServerError("Server error")
	}

	// Сразу выдаем токен, чтобы клиент не делал отдельный login.
	token, err := h.session.Create(ctx, userID)
	if err != nil {
		h.log.Error("failed to create session", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("Server error")
	}

	return &signupOutput{
		Body: signupResponse{Success: true, ID: userID, Token: token},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *credentialsInput) (*loginOutput, error) {
	if input.Body.Login == "" || input.Body.Password == "" {
		return nil, huma.Error400BadRequest("Missing login or password")
	}

	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	switch {
	case errors.Is(err, user.ErrInvalidAuth):
		return nil, huma.Error401Unauthorized("Invalid credentials")
	case err != nil:
		return nil, huma.Error500InternalServerError("Login failed")
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("failed to create session", "user_id", u.ID, "error", err)
		return nil, huma.Error500InternalServerError("Login failed")
	}

	return &loginOutput{
		Body: loginResponse{Success: true, Token: token},
	}, nil
}
