package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mgr-punith/password-vault/internal/app/client/config"
	"github.com/mgr-punith/password-vault/internal/app/client/crypto"
	"github.com/mgr-punith/password-vault/internal/app/client/keystore"
	"github.com/mgr-punith/password-vault/internal/app/client/unlock"
	"github.com/mgr-punith/password-vault/internal/common"
	"github.com/mgr-punith/password-vault/internal/domain/vault"

	"golang.org/x/exp/slog"
)

// ErrNotSaved запись не удалось зашифровать и она не отправлена на сервер.
var ErrNotSaved = errors.New("entry not saved")

// Accounts учетные записи и доступность сервера.
type Accounts interface {
	HealthCheck(ctx context.Context) error
	Register(ctx context.Context, login, password string) (string, error)
	Login(ctx context.Context, login, password string) (string, error)
	SetToken(token string)
}

// RecordStore серверное хранилище зашифрованных записей текущей учетной записи.
type RecordStore interface {
	List(ctx context.Context) ([]vault.Record, error)
	Create(ctx context.Context, ciphertext, iv string) (string, error)
	Update(ctx context.Context, id, ciphertext, iv string) error
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	Replace(ctx context.Context, ownerID string, records []vault.Record) error
	List(ctx context.Context, ownerID string) ([]vault.Record, error)
}

type Deps struct {
	Accounts Accounts
	Pins     unlock.PinService
	Records  RecordStore
	// Cache может быть nil, тогда офлайн-режима нет.
	Cache  Cache
	Tokens *TokenStore
	Keys   keystore.Store
	KDF    *crypto.KDF
	Log    *slog.Logger
}

type App struct {
	accounts Accounts
	records  RecordStore
	cache    Cache
	tokens   *TokenStore
	machine  *unlock.Machine
	log      *slog.Logger
	closers  []func() error

	mu    sync.RWMutex
	owner string
}

// New собирает клиент: HTTP, SQLite-кэш и анклав memguard для ключа сессии.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl := NewHTTPClient(cfg, log)

	var (
		cache   Cache
		closers []func() error
	)
	sqliteCache, err := NewSQLiteCache(cfg.CachePath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, офлайн-режим отключен", "error", err)
	} else {
		cache = sqliteCache
		closers = append(closers, sqliteCache.Close)
	}

	app := NewApp(Deps{
		Accounts: httpCl,
		Pins:     httpCl.Pins(),
		Records:  httpCl.Records(),
		Cache:    cache,
		Tokens:   NewTokenStore(cfg.TokenPath),
		Keys:     keystore.NewEnclave(),
		KDF:      crypto.NewKDF(),
		Log:      log,
	})
	app.closers = closers

	if err := app.restoreSession(); err != nil && !errors.Is(err, ErrNoToken) {
		log.Warn("Не удалось загрузить токен", "error", err)
	}

	return app, nil
}

func NewApp(d Deps) *App {
	return &App{
		accounts: d.Accounts,
		records:  d.Records,
		cache:    d.Cache,
		tokens:   d.Tokens,
		machine:  unlock.New(d.Pins, d.KDF, d.Keys, d.Log),
		log:      d.Log.With("component", "client"),
	}
}

func (a *App) restoreSession() error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}

	a.useToken(token)
	a.log.Debug("Токен загружен из файла")

	return nil
}

func (a *App) useToken(token string) {
	a.accounts.SetToken(token)

	owner := ""
	if token != "" {
		var err error
		if owner, err = TokenOwner(token); err != nil {
			a.log.Warn("В токене нет владельца, офлайн-кэш отключен", "error", err)
		}
	}

	a.mu.Lock()
	a.owner = owner
	a.mu.Unlock()
}

func (a *App) startSession(token string) error {
	// Состояние PIN прошлой учетной записи не должно пережить смену входа.
	a.machine.Reset()

	if err := a.tokens.Save(token); err != nil {
		return err
	}
	a.useToken(token)

	return nil
}

func (a *App) Register(ctx context.Context, login, password string) error {
	token, err := a.accounts.Register(ctx, login, password)
	if err != nil {
		return err
	}
	return a.startSession(token)
}

func (a *App) Login(ctx context.Context, login, password string) error {
	token, err := a.accounts.Login(ctx, login, password)
	if err != nil {
		return err
	}
	return a.startSession(token)
}

func (a *App) Logout() error {
	a.machine.Reset()
	a.useToken("")
	return a.tokens.Clear()
}

// Ping проверяет, что сервер отвечает и видит свою базу.
func (a *App) Ping(ctx context.Context) error {
	return a.accounts.HealthCheck(ctx)
}

func (a *App) LoggedIn() bool {
	_, err := a.tokens.Load()
	return err == nil
}

func (a *App) State() unlock.State {
	return a.machine.State()
}

func (a *App) Status(ctx context.Context) (unlock.State, error) {
	return a.machine.CheckStatus(ctx)
}

func (a *App) SetPin(ctx context.Context, pin string) error {
	if a.machine.State() == unlock.StateUnknown {
		if _, err := a.machine.CheckStatus(ctx); err != nil {
			return err
		}
	}
	return a.machine.SetPin(ctx, pin)
}

// Unlock проверяет PIN и материализует ключ сессии.
func (a *App) Unlock(ctx context.Context, pin string) error {
	if a.machine.State() == unlock.StateUnknown {
		if _, err := a.machine.CheckStatus(ctx); err != nil {
			return err
		}
	}
	return a.machine.VerifyPin(ctx, pin)
}

func (a *App) Lock() {
	a.machine.Lock()
}

func (a *App) AddEntry(ctx context.Context, entry crypto.Entry) (string, error) {
	sealed, err := a.seal(entry)
	if err != nil {
		return "", err
	}

	id, err := a.records.Create(ctx, sealed.Ciphertext, sealed.IV)
	if err != nil {
		return "", fmt.Errorf("create record: %w", err)
	}

	a.log.Debug("Запись добавлена", "id", id)
	return id, nil
}

func (a *App) UpdateEntry(ctx context.Context, id string, entry crypto.Entry) error {
	sealed, err := a.seal(entry)
	if err != nil {
		return err
	}

	if err := a.records.Update(ctx, id, sealed.Ciphertext, sealed.IV); err != nil {
		return fmt.Errorf("update record: %w", err)
	}

	return nil
}

func (a *App) DeleteEntry(ctx context.Context, id string) error {
	key, err := a.machine.SessionKey()
	if err != nil {
		return err
	}
	crypto.ClearMemory(key)

	if err := a.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	return nil
}

// ListEntries расшифровывает записи. Битые записи попадают в Listing.Failed
// и не прерывают список. При недоступном сервере используется кэш.
func (a *App) ListEntries(ctx context.Context) (Listing, error) {
	key, err := a.machine.SessionKey()
	if err != nil {
		return Listing{}, err
	}
	defer crypto.ClearMemory(key)

	a.mu.RLock()
	owner := a.owner
	a.mu.RUnlock()

	var listing Listing

	records, err := a.records.List(ctx)
	switch {
	case err == nil:
		a.saveCache(ctx, owner, records)
	case errors.Is(err, common.ErrTransport) && a.cache != nil && owner != "":
		cached, cacheErr := a.cache.List(ctx, owner)
		if cacheErr != nil {
			a.log.Warn("Не удалось прочитать офлайн-кэш", "error", cacheErr)
			return Listing{}, fmt.Errorf("list records: %w", err)
		}
		a.log.Info("Сервер недоступен, используется офлайн-кэш", "error", err)
		records = cached
		listing.Offline = true
	default:
		return Listing{}, fmt.Errorf("list records: %w", err)
	}

	for _, rec := range records {
		entry, err := crypto.Decrypt(crypto.Sealed{Ciphertext: rec.Ciphertext, IV: rec.IV}, key)
		switch {
		case err == nil:
			listing.Items = append(listing.Items, Item{
				ID:        rec.ID,
				Entry:     entry,
				CreatedAt: rec.CreatedAt,
				UpdatedAt: rec.UpdatedAt,
			})
		case errors.Is(err, crypto.ErrMalformedRecord),
			errors.Is(err, crypto.ErrAuthenticationFailed),
			errors.Is(err, crypto.ErrCorruptPayload):
			a.log.Warn("Запись не расшифрована, пропускаем", "id", rec.ID, "error", err)
			listing.Failed = append(listing.Failed, Failure{ID: rec.ID, Err: err})
		default:
			return Listing{}, fmt.Errorf("decrypt record %s: %w", rec.ID, err)
		}
	}

	return listing, nil
}

func (a *App) saveCache(ctx context.Context, owner string, records []vault.Record) {
	if a.cache == nil || owner == "" {
		return
	}
	if err := a.cache.Replace(ctx, owner, records); err != nil {
		a.log.Warn("Не удалось обновить офлайн-кэш", "error", err)
	}
}

func (a *App) seal(entry crypto.Entry) (crypto.Sealed, error) {
	key, err := a.machine.SessionKey()
	if err != nil {
		return crypto.Sealed{}, err
	}
	defer crypto.ClearMemory(key)

	sealed, err := crypto.Encrypt(entry, key)
	if err != nil {
		return crypto.Sealed{}, fmt.Errorf("%w: %w", ErrNotSaved, err)
	}

	return sealed, nil
}

// Close блокирует хранилище и закрывает локальные ресурсы.
func (a *App) Close() error {
	a.machine.Lock()

	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}

	return errors.Join(errs...)
}
