// Package unlock управляет разблокировкой хранилища по PIN.
//
// PinService видит только сам PIN для хэширования и сравнения. Ключ сессии
// выводится из того же PIN локально и никогда не покидает клиент.
package unlock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mgr-punith/password-vault/internal/app/client/crypto"
	"github.com/mgr-punith/password-vault/internal/app/client/keystore"
	"github.com/mgr-punith/password-vault/internal/domain/pin"

	"golang.org/x/exp/slog"
)

var (
	ErrValidation        = errors.New("invalid PIN format")
	ErrInvalidTransition = errors.New("operation not allowed in current state")
	ErrSetPinFailed      = errors.New("set PIN failed")
	ErrInvalidPin        = errors.New("invalid PIN")
	ErrLocked            = errors.New("vault is locked")
)

// PinService привязан к аутентифицированной учетной записи.
type PinService interface {
	Has(ctx context.Context) (bool, error)
	Set(ctx context.Context, pin string) error
	Verify(ctx context.Context, pin string) error
}

// Machine конечный автомат разблокировки. Мьютекс защищает только состояние
// и не удерживается во время вызовов PinService.
type Machine struct {
	pins PinService
	kdf  *crypto.KDF
	keys keystore.Store
	log  *slog.Logger

	mu    sync.Mutex
	state State
	// epoch увеличивается при Lock и Reset, чтобы завершившаяся после них
	// проверка PIN не разблокировала хранилище.
	epoch uint64
	// generation увеличивается только при Reset, то есть при смене учетной записи.
	generation uint64
}

// ticket снимок счетчиков на начало операции с PIN.
type ticket struct {
	epoch      uint64
	generation uint64
}

func New(pins PinService, kdf *crypto.KDF, keys keystore.Store, log *slog.Logger) *Machine {
	return &Machine{
		pins:  pins,
		kdf:   kdf,
		keys:  keys,
		log:   log.With("component", "unlock"),
		state: StateUnknown,
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// CheckStatus узнает у сервера, задан ли PIN, и возвращает StateNotInitialized,
// StateInitialized или StateUnknown при ошибке. Открытая сессия не сбрасывается.
func (m *Machine) CheckStatus(ctx context.Context) (State, error) {
	has, err := m.pins.Has(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		if m.state != StateUnlocked {
			m.state = StateUnknown
		}
		m.log.Warn("Не удалось проверить статус PIN", "error", err)
		return StateUnknown, fmt.Errorf("check pin status: %w", err)
	}

	if !has {
		m.keys.Clear()
		m.state = StateNotInitialized
		return StateNotInitialized, nil
	}

	if m.state != StateUnlocked && m.state != StateLockedWithError {
		m.state = StateInitialized
	}

	return StateInitialized, nil
}

// SetPin задает PIN для новой учетной записи и сразу разблокирует хранилище.
func (m *Machine) SetPin(ctx context.Context, p string) error {
	t, err := m.begin(StateNotInitialized)
	if err != nil {
		return err
	}

	if err := pin.Validate(p); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := m.pins.Set(ctx, p); err != nil {
		m.log.Warn("Не удалось задать PIN", "error", err)
		return fmt.Errorf("%w: %w", ErrSetPinFailed, err)
	}

	return m.unlock(t, p)
}

// VerifyPin проверяет PIN на сервере. Ключ выводится только после успешной проверки.
func (m *Machine) VerifyPin(ctx context.Context, p string) error {
	t, err := m.begin(StateInitialized, StateLockedWithError)
	if err != nil {
		return err
	}

	if err := pin.Validate(p); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := m.pins.Verify(ctx, p); err != nil {
		m.keys.Clear()

		m.mu.Lock()
		if m.epoch == t.epoch {
			m.state = StateLockedWithError
		}
		m.mu.Unlock()

		m.log.Warn("PIN не прошел проверку", "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidPin, err)
	}

	return m.unlock(t, p)
}

// Lock очищает ключ сессии. Хранилище без PIN остается в своем состоянии.
func (m *Machine) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keys.Clear()
	m.epoch++

	if m.state == StateUnlocked || m.state == StateLockedWithError {
		m.state = StateInitialized
	}

	m.log.Debug("Хранилище заблокировано")
}

// Reset очищает ключ и возвращает автомат в StateUnknown. Нужен при смене
// учетной записи: статус PIN новой записи еще не известен.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keys.Clear()
	m.epoch++
	m.generation++
	m.state = StateUnknown
}

// SessionKey возвращает ключ сессии только в состоянии StateUnlocked.
func (m *Machine) SessionKey() ([]byte, error) {
	m.mu.Lock()
	state := m.state
	m.mu.Unlock()

	if state != StateUnlocked {
		return nil, ErrLocked
	}

	key, err := m.keys.Get()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocked, err)
	}

	return key, nil
}

func (m *Machine) begin(allowed ...State) (ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range allowed {
		if m.state == s {
			return ticket{epoch: m.epoch, generation: m.generation}, nil
		}
	}

	return ticket{}, fmt.Errorf("%w: %s", ErrInvalidTransition, m.state)
}

func (m *Machine) unlock(t ticket, p string) error {
	key := m.kdf.Derive(p)
	defer crypto.ClearMemory(key)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != t.epoch {
		// Пока шел запрос, хранилище заблокировали. PIN на сервере уже задан.
		// После Reset это другая учетная запись, ее статус не трогаем.
		if m.generation == t.generation {
			m.state = StateInitialized
		}
		return ErrLocked
	}

	m.keys.Set(key)
	m.state = StateUnlocked
	m.log.Debug("Хранилище разблокировано")

	return nil
}
