package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/internal/app/client"
	"github.com/mgr-punith/password-vault/internal/app/client/crypto"
	"github.com/mgr-punith/password-vault/internal/app/client/unlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVault struct {
	mock.Mock
}

func (m *MockVault) State() unlock.State {
	return m.Called().Get(0).(unlock.State)
}

func (m *MockVault) Status(ctx context.Context) (unlock.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(unlock.State), args.Error(1)
}

func (m *MockVault) Unlock(ctx context.Context, pin string) error {
	return m.Called(ctx, pin).Error(0)
}

func (m *MockVault) Lock() {
	m.Called()
}

func (m *MockVault) AddEntry(ctx context.Context, entry crypto.Entry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *MockVault) UpdateEntry(ctx context.Context, id string, entry crypto.Entry) error {
	return m.Called(ctx, id, entry).Error(0)
}

func (m *MockVault) DeleteEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVault) ListEntries(ctx context.Context) (client.Listing, error) {
	args := m.Called(ctx)
	return args.Get(0).(client.Listing), args.Error(1)
}

func TestUnlock(t *testing.T) {
	ctx := context.Background()

	t.Run("already unlocked", func(t *testing.T) {
		v := new(MockVault)
		v.On("State").Return(unlock.StateUnlocked)

		require.NoError(t, Unlock(ctx, v, prompt.New(strings.NewReader(""), io.Discard)))
		v.AssertNotCalled(t, "Status", mock.Anything)
	})

	t.Run("pin not set", func(t *testing.T) {
		v := new(MockVault)
		v.On("State").Return(unlock.StateUnknown)
		v.On("Status", ctx).Return(unlock.StateNotInitialized, nil)

		err := Unlock(ctx, v, prompt.New(strings.NewReader("123456\n"), io.Discard))
		assert.ErrorIs(t, err, ErrNoPin)
		v.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything)
	})

	t.Run("prompts and unlocks", func(t *testing.T) {
		v := new(MockVault)
		v.On("State").Return(unlock.StateInitialized)
		v.On("Status", ctx).Return(unlock.StateInitialized, nil)
		v.On("Unlock", ctx, "482913").Return(nil)

		require.NoError(t, Unlock(ctx, v, prompt.New(strings.NewReader("482913\n"), io.Discard)))
		v.AssertExpectations(t)
	})

	t.Run("wrong pin", func(t *testing.T) {
		v := new(MockVault)
		v.On("State").Return(unlock.StateInitialized)
		v.On("Status", ctx).Return(unlock.StateInitialized, nil)
		v.On("Unlock", ctx, "000000").Return(unlock.ErrInvalidPin)

		err := Unlock(ctx, v, prompt.New(strings.NewReader("000000\n"), io.Discard))
		assert.ErrorIs(t, err, unlock.ErrInvalidPin)
	})

	t.Run("status error", func(t *testing.T) {
		v := new(MockVault)
		v.On("State").Return(unlock.StateUnknown)
		v.On("Status", ctx).Return(unlock.StateUnknown, errors.New("offline"))

		assert.Error(t, Unlock(ctx, v, prompt.New(strings.NewReader(""), io.Discard)))
	})
}

func TestEntryForm(t *testing.T) {
	current := crypto.Entry{Site: "example.com", Username: "alice", Password: "old", Notes: "n"}

	tests := []struct {
		name     string
		input    string
		current  crypto.Entry
		generate bool
		want     crypto.Entry
		wantErr  error
	}{
		{
			name:  "new entry",
			input: "github.com\nbob\ns3cret\nwork\n",
			want:  crypto.Entry{Site: "github.com", Username: "bob", Password: "s3cret", Notes: "work"},
		},
		{
			name:    "keep current values",
			input:   "\n\n\n\n",
			current: current,
			want:    current,
		},
		{
			name:    "empty site",
			input:   "  \n",
			wantErr: ErrSiteEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EntryForm(prompt.New(strings.NewReader(tt.input), io.Discard), tt.current, tt.generate)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntryForm_Generate(t *testing.T) {
	got, err := EntryForm(prompt.New(strings.NewReader("example.com\nalice\nnotes\n"), io.Discard), crypto.Entry{}, true)
	require.NoError(t, err)

	assert.Equal(t, "example.com", got.Site)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "notes", got.Notes)
	assert.Len(t, got.Password, 16)
}

func TestPrintListing(t *testing.T) {
	listing := client.Listing{
		Items: []client.Item{
			{ID: "1", Entry: crypto.Entry{Site: "github.com", Username: "alice", Password: "p1"}, UpdatedAt: time.Now()},
			{ID: "2", Entry: crypto.Entry{Site: "example.com", Username: "bob", Password: "p2"}, UpdatedAt: time.Now()},
		},
		Failed:  []client.Failure{{ID: "3", Err: crypto.ErrAuthenticationFailed}},
		Offline: true,
	}

	var out bytes.Buffer
	PrintListing(&out, listing, "git", false)

	s := out.String()
	assert.Contains(t, s, "локального кэша")
	assert.Contains(t, s, "github.com")
	assert.NotContains(t, s, "example.com")
	assert.NotContains(t, s, "p1")
	assert.Contains(t, s, "********")
	assert.Contains(t, s, "Запись 3 не расшифрована")

	out.Reset()
	PrintListing(&out, listing, "", true)
	assert.Contains(t, out.String(), "p2")

	out.Reset()
	PrintListing(&out, client.Listing{}, "", false)
	assert.Contains(t, out.String(), "Записи не найдены")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "привет", truncate("привет", 6))
}
