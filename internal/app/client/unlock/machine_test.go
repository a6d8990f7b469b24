package unlock

import (
	"context"
	"testing"

	"github.com/mgr-punith/password-vault/internal/app/client/crypto"
	"github.com/mgr-punith/password-vault/internal/app/client/keystore"
	"github.com/mgr-punith/password-vault/internal/common"
	"github.com/mgr-punith/password-vault/internal/domain/pin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockPinService struct {
	mock.Mock
}

func (m *MockPinService) Has(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockPinService) Set(ctx context.Context, p string) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPinService) Verify(ctx context.Context, p string) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func fastKDF() *crypto.KDF {
	return &crypto.KDF{Salt: []byte(crypto.DefaultSalt), Iterations: 1000}
}

func newMachine(t *testing.T, pins PinService, state State) (*Machine, *keystore.MemoryStore) {
	t.Helper()
	keys := keystore.NewMemory()
	m := New(pins, fastKDF(), keys, slog.Default())
	m.state = state
	return m, keys
}

func TestMachine_CheckStatus(t *testing.T) {
	tests := []struct {
		name      string
		start     State
		has       bool
		err       error
		want      State
		wantState State
	}{
		{name: "no pin", start: StateUnknown, has: false, want: StateNotInitialized, wantState: StateNotInitialized},
		{name: "pin set", start: StateUnknown, has: true, want: StateInitialized, wantState: StateInitialized},
		{name: "transport failure", start: StateInitialized, err: common.ErrTransport, want: StateUnknown, wantState: StateUnknown},
		{name: "unlocked session survives", start: StateUnlocked, has: true, want: StateInitialized, wantState: StateUnlocked},
		{name: "locked with error survives", start: StateLockedWithError, has: true, want: StateInitialized, wantState: StateLockedWithError},
		{name: "unlocked session survives transport failure", start: StateUnlocked, err: common.ErrTransport, want: StateUnknown, wantState: StateUnlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pins := new(MockPinService)
			pins.On("Has", mock.Anything).Return(tt.has, tt.err)
			m, _ := newMachine(t, pins, tt.start)

			got, err := m.CheckStatus(context.Background())
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantState, m.State())
		})
	}
}

func TestMachine_SetPin(t *testing.T) {
	t.Run("success unlocks and stores derived key", func(t *testing.T) {
		pins := new(MockPinService)
		pins.On("Set", mock.Anything, "482913").Return(nil)
		m, keys := newMachine(t, pins, StateNotInitialized)

		require.NoError(t, m.SetPin(context.Background(), "482913"))
		assert.Equal(t, StateUnlocked, m.State())

		stored, err := keys.Get()
		require.NoError(t, err)
		assert.Equal(t, fastKDF().Derive("482913"), stored)
	})

	t.Run("validation error makes no service call", func(t *testing.T) {
		for _, bad := range []string{"", "12345", "1234567", "12a456"} {
			pins := new(MockPinService)
			m, keys := newMachine(t, pins, StateNotInitialized)

			err := m.SetPin(context.Background(), bad)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, pin.ErrValidation)
			assert.Equal(t, StateNotInitialized, m.State())
			pins.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)

			_, err = keys.Get()
			assert.ErrorIs(t, err, keystore.ErrEmpty)
		}
	})

	t.Run("service failure keeps NotInitialized", func(t *testing.T) {
		for _, cause := range []error{pin.ErrAlreadySet, common.ErrTransport} {
			pins := new(MockPinService)
			pins.On("Set", mock.Anything, "482913").Return(cause)
			m, keys := newMachine(t, pins, StateNotInitialized)

			err := m.SetPin(context.Background(), "482913")
			assert.ErrorIs(t, err, ErrSetPinFailed)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, StateNotInitialized, m.State())

			_, err = keys.Get()
			assert.ErrorIs(t, err, keystore.ErrEmpty)
		}
	})

	t.Run("rejected outside NotInitialized", func(t *testing.T) {
		for _, st := range []State{StateUnknown, StateInitialized, StateUnlocked, StateLockedWithError} {
			pins := new(MockPinService)
			m, _ := newMachine(t, pins, st)

			err := m.SetPin(context.Background(), "482913")
			assert.ErrorIs(t, err, ErrInvalidTransition, st.String())
			assert.Equal(t, st, m.State())
			pins.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
		}
	})
}

func TestMachine_VerifyPin(t *testing.T) {
	t.Run("success from Initialized", func(t *testing.T) {
		pins := new(MockPinService)
		pins.On("Verify", mock.Anything, "482913").Return(nil)
		m, keys := newMachine(t, pins, StateInitialized)

		require.NoError(t, m.VerifyPin(context.Background(), "482913"))
		assert.Equal(t, StateUnlocked, m.State())

		stored, err := keys.Get()
		require.NoError(t, err)
		assert.Equal(t, fastKDF().Derive("482913"), stored)
	})

	t.Run("retry from LockedWithError", func(t *testing.T) {
		pins := new(MockPinService)
		pins.On("Verify", mock.Anything, "111111").Return(pin.ErrMismatch).Once()
		pins.On("Verify", mock.Anything, "482913").Return(nil).Once()
		m, _ := newMachine(t, pins, StateInitialized)

		err := m.VerifyPin(context.Background(), "111111")
		assert.ErrorIs(t, err, ErrInvalidPin)
		assert.ErrorIs(t, err, pin.ErrMismatch)
		assert.Equal(t, StateLockedWithError, m.State())

		require.NoError(t, m.VerifyPin(context.Background(), "482913"))
		assert.Equal(t, StateUnlocked, m.State())
		pins.AssertExpectations(t)
	})

	t.Run("failure never materializes a key", func(t *testing.T) {
		for _, cause := range []error{pin.ErrMismatch, pin.ErrNotSet, common.ErrTransport} {
			pins := new(MockPinService)
			pins.On("Verify", mock.Anything, "482913").Return(cause)
			m, keys := newMachine(t, pins, StateInitialized)

			err := m.VerifyPin(context.Background(), "482913")
			assert.ErrorIs(t, err, ErrInvalidPin)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, StateLockedWithError, m.State())

			_, err = keys.Get()
			assert.ErrorIs(t, err, keystore.ErrEmpty)

			_, err = m.SessionKey()
			assert.ErrorIs(t, err, ErrLocked)
		}
	})

	t.Run("validation error makes no service call", func(t *testing.T) {
		pins := new(MockPinService)
		m, _ := newMachine(t, pins, StateInitialized)

		err := m.VerifyPin(context.Background(), "48291")
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, StateInitialized, m.State())
		pins.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("rejected outside Initialized and LockedWithError", func(t *testing.T) {
		for _, st := range []State{StateUnknown, StateNotInitialized, StateUnlocked} {
			pins := new(MockPinService)
			m, _ := newMachine(t, pins, st)

			err := m.VerifyPin(context.Background(), "482913")
			assert.ErrorIs(t, err, ErrInvalidTransition, st.String())
			pins.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
		}
	})

	t.Run("lock during verification wins", func(t *testing.T) {
		pins := new(MockPinService)
		m, keys := newMachine(t, pins, StateInitialized)
		pins.On("Verify", mock.Anything, "482913").Run(func(mock.Arguments) {
			m.Lock()
		}).Return(nil)

		err := m.VerifyPin(context.Background(), "482913")
		assert.ErrorIs(t, err, ErrLocked)
		assert.Equal(t, StateInitialized, m.State())

		_, err = keys.Get()
		assert.ErrorIs(t, err, keystore.ErrEmpty)
	})

	t.Run("account switch during verification keeps status unknown", func(t *testing.T) {
		pins := new(MockPinService)
		m, keys := newMachine(t, pins, StateInitialized)
		pins.On("Verify", mock.Anything, "482913").Run(func(mock.Arguments) {
			m.Reset()
		}).Return(nil)

		err := m.VerifyPin(context.Background(), "482913")
		assert.ErrorIs(t, err, ErrLocked)
		assert.Equal(t, StateUnknown, m.State())

		_, err = keys.Get()
		assert.ErrorIs(t, err, keystore.ErrEmpty)
	})

	t.Run("account switch and new status during verification", func(t *testing.T) {
		pins := new(MockPinService)
		m, _ := newMachine(t, pins, StateInitialized)
		pins.On("Verify", mock.Anything, "482913").Run(func(mock.Arguments) {
			m.Reset()
			m.mu.Lock()
			m.state = StateNotInitialized
			m.mu.Unlock()
		}).Return(nil)

		err := m.VerifyPin(context.Background(), "482913")
		assert.ErrorIs(t, err, ErrLocked)
		assert.Equal(t, StateNotInitialized, m.State())
	})
}

func TestMachine_SetPin_ResetDuringRequest(t *testing.T) {
	pins := new(MockPinService)
	m, keys := newMachine(t, pins, StateNotInitialized)
	pins.On("Set", mock.Anything, "482913").Run(func(mock.Arguments) {
		m.Reset()
	}).Return(nil)

	err := m.SetPin(context.Background(), "482913")
	assert.ErrorIs(t, err, ErrLocked)
	assert.Equal(t, StateUnknown, m.State())

	_, err = keys.Get()
	assert.ErrorIs(t, err, keystore.ErrEmpty)
}

func TestMachine_Lock(t *testing.T) {
	tests := []struct {
		start State
		want  State
	}{
		{start: StateUnlocked, want: StateInitialized},
		{start: StateLockedWithError, want: StateInitialized},
		{start: StateInitialized, want: StateInitialized},
		{start: StateNotInitialized, want: StateNotInitialized},
		{start: StateUnknown, want: StateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.start.String(), func(t *testing.T) {
			m, keys := newMachine(t, new(MockPinService), tt.start)
			keys.Set(make([]byte, crypto.KeySize))

			m.Lock()
			assert.Equal(t, tt.want, m.State())

			_, err := keys.Get()
			assert.ErrorIs(t, err, keystore.ErrEmpty)
		})
	}
}

func TestMachine_Reset(t *testing.T) {
	m, keys := newMachine(t, new(MockPinService), StateUnlocked)
	keys.Set(make([]byte, crypto.KeySize))

	m.Reset()
	assert.Equal(t, StateUnknown, m.State())

	_, err := m.SessionKey()
	assert.ErrorIs(t, err, ErrLocked)

	_, err = keys.Get()
	assert.ErrorIs(t, err, keystore.ErrEmpty)
}

func TestMachine_SessionKey(t *testing.T) {
	pins := new(MockPinService)
	pins.On("Set", mock.Anything, "482913").Return(nil)
	m, _ := newMachine(t, pins, StateNotInitialized)

	_, err := m.SessionKey()
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, m.SetPin(context.Background(), "482913"))
	key, err := m.SessionKey()
	require.NoError(t, err)
	assert.Len(t, key, crypto.KeySize)

	m.Lock()
	_, err = m.SessionKey()
	assert.ErrorIs(t, err, ErrLocked)
}

// fakePinService хранит PIN в памяти так же, как сервер: только сравнение.
type fakePinService struct {
	pin string
}

func (f *fakePinService) Has(context.Context) (bool, error) { return f.pin != "", nil }

func (f *fakePinService) Set(_ context.Context, p string) error {
	if f.pin != "" {
		return pin.ErrAlreadySet
	}
	f.pin = p
	return nil
}

func (f *fakePinService) Verify(_ context.Context, p string) error {
	if f.pin == "" {
		return pin.ErrNotSet
	}
	if f.pin != p {
		return pin.ErrMismatch
	}
	return nil
}

func TestMachine_EndToEnd(t *testing.T) {
	ctx := context.Background()
	m := New(&fakePinService{}, crypto.NewKDF(), keystore.NewMemory(), slog.Default())

	state, err := m.CheckStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, StateNotInitialized, state)

	require.NoError(t, m.SetPin(ctx, "482913"))
	require.Equal(t, StateUnlocked, m.State())

	original, err := m.SessionKey()
	require.NoError(t, err)

	entry := crypto.Entry{Site: "example.com", Username: "a", Password: "p", Notes: ""}
	first, err := crypto.Encrypt(entry, original)
	require.NoError(t, err)
	second, err := crypto.Encrypt(entry, original)
	require.NoError(t, err)
	assert.NotEqual(t, first.IV, second.IV)
	assert.NotEqual(t, first.Ciphertext, second.Ciphertext)

	m.Lock()
	require.Equal(t, StateInitialized, m.State())

	require.NoError(t, m.VerifyPin(ctx, "482913"))
	require.Equal(t, StateUnlocked, m.State())

	again, err := m.SessionKey()
	require.NoError(t, err)
	assert.Equal(t, original, again)

	got, err := crypto.Decrypt(first, again)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestMachine_PinServiceNeverSeesKey(t *testing.T) {
	pins := new(MockPinService)
	pins.On("Set", mock.Anything, mock.MatchedBy(func(p string) bool {
		return p == "482913"
	})).Return(nil)
	m, _ := newMachine(t, pins, StateNotInitialized)

	require.NoError(t, m.SetPin(context.Background(), "482913"))
	pins.AssertExpectations(t)

	for _, call := range pins.Calls {
		for _, arg := range call.Arguments[1:] {
			assert.Len(t, arg.(string), pin.Length)
		}
	}
}
