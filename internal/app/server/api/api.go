// POST   /api/auth/signup          # Регистрация (публичный)
// POST   /api/auth/login           # Логин (публичный)
// GET    /api/health               # Состояние сервиса (публичный)
// GET    /api/vault/has-pin        # Задан ли PIN (auth)
// POST   /api/vault/set-pin        # Задать PIN (auth)
// POST   /api/vault/verify-pin     # Проверить PIN (auth)
// GET    /api/vault/list           # Список записей (auth)
// POST   /api/vault/create         # Создать запись (auth)
// PUT    /api/vault/update/{id}    # Обновить запись (auth)
// DELETE /api/vault/delete/{id}    # Удалить запись (auth)

package api

import (
	accountAPI "github.com/mgr-punith/password-vault/internal/app/server/api/http/account"
	healthAPI "github.com/mgr-punith/password-vault/internal/app/server/api/http/health"
	"github.com/mgr-punith/password-vault/internal/app/server/api/http/middleware"
	"github.com/mgr-punith/password-vault/internal/app/server/api/http/middleware/auth"
	"github.com/mgr-punith/password-vault/internal/app/server/api/http/middleware/logger"
	pinAPI "github.com/mgr-punith/password-vault/internal/app/server/api/http/pin"
	vaultAPI "github.com/mgr-punith/password-vault/internal/app/server/api/http/vault"
	"github.com/mgr-punith/password-vault/internal/app/server/config"
	"github.com/mgr-punith/password-vault/internal/domain/pin"
	"github.com/mgr-punith/password-vault/internal/domain/session"
	"github.com/mgr-punith/password-vault/internal/domain/user"
	"github.com/mgr-punith/password-vault/internal/domain/vault"
	"github.com/mgr-punith/password-vault/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health  *healthAPI.Handler
	Account *accountAPI.Handler
	Pin     *pinAPI.Handler
	Vault   *vaultAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(storage *postgres.Storage, cfg *config.Config, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	humaCfg := huma.DefaultConfig("Password Vault API", "1.0.0")
	humaCfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaCfg)

	h := handlers(storage, cfg, log)
	h.Health.SetupRoutes(API)
	h.Account.SetupRoutes(API)
	h.Pin.SetupRoutes(API)
	h.Vault.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, cfg *config.Config, log *slog.Logger) *Handlers {
	sessionService := session.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(storage, log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage.Pool(), log)
	userService := user.NewService(userRepo, user.NewCredentialsValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	accountHandler := accountAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	pinRepo := postgres.NewPinRepository(storage.Pool(), log)
	pinService := pin.NewService(pinRepo, cfg.Auth.PinHashCost, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	pinHandler := pinAPI.NewHandler(pinService, log, middlewares.GetAllAndClear())

	vaultRepo := postgres.NewVaultRepository(storage.Pool(), log)
	vaultService := vault.NewService(vaultRepo, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	vaultHandler := vaultAPI.NewHandler(vaultService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		Account: accountHandler,
		Pin:     pinHandler,
		Vault:   vaultHandler,
	}
}
