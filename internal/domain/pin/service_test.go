package pin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetHash(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) SetHash(ctx context.Context, userID, hash string) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

const userID = "7b0c5a6e-3c1f-4e0e-9d4b-1f2a3b4c5d6e"

func TestNewService_CostFloor(t *testing.T) {
	assert.Equal(t, MinCost, NewService(nil, 4, slog.Default()).cost)
	assert.Equal(t, 12, NewService(nil, 12, slog.Default()).cost)
	assert.Equal(t, bcrypt.MaxCost, NewService(nil, 99, slog.Default()).cost)
}

func TestService_Has(t *testing.T) {
	tests := []struct {
		name    string
		hash    string
		repoErr error
		want    bool
		wantErr bool
	}{
		{name: "set", hash: "$2a$10$hash", want: true},
		{name: "not set", repoErr: ErrNotSet, want: false},
		{name: "db error", repoErr: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("GetHash", mock.Anything, userID).Return(tt.hash, tt.repoErr)
			svc := NewService(repo, MinCost, slog.Default())

			got, err := svc.Has(context.Background(), userID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Set(t *testing.T) {
	t.Run("stores bcrypt hash, never the raw pin", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetHash", mock.Anything, userID).Return("", ErrNotSet)
		repo.On("SetHash", mock.Anything, userID, mock.MatchedBy(func(hash string) bool {
			cost, err := bcrypt.Cost([]byte(hash))
			return err == nil && cost >= MinCost &&
				hash != "482913" &&
				bcrypt.CompareHashAndPassword([]byte(hash), []byte("482913")) == nil
		})).Return(nil)

		svc := NewService(repo, MinCost, slog.Default())
		require.NoError(t, svc.Set(context.Background(), userID, "482913"))
		repo.AssertExpectations(t)
	})

	t.Run("invalid format does not touch repository", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, MinCost, slog.Default())

		err := svc.Set(context.Background(), userID, "12ab56")
		assert.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "GetHash", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "SetHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already set", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetHash", mock.Anything, userID).Return("$2a$10$hash", nil)
		svc := NewService(repo, MinCost, slog.Default())

		err := svc.Set(context.Background(), userID, "482913")
		assert.ErrorIs(t, err, ErrAlreadySet)
		repo.AssertNotCalled(t, "SetHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race with concurrent set", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetHash", mock.Anything, userID).Return("", ErrNotSet)
		repo.On("SetHash", mock.Anything, userID, mock.AnythingOfType("string")).Return(ErrAlreadySet)
		svc := NewService(repo, MinCost, slog.Default())

		err := svc.Set(context.Background(), userID, "482913")
		assert.ErrorIs(t, err, ErrAlreadySet)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetHash", mock.Anything, userID).Return("", ErrNotSet)
		repo.On("SetHash", mock.Anything, userID, mock.AnythingOfType("string")).Return(errors.New("database error"))
		svc := NewService(repo, MinCost, slog.Default())

		err := svc.Set(context.Background(), userID, "482913")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})
}

func TestService_Verify(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("482913"), MinCost)
	require.NoError(t, err)

	tests := []struct {
		name    string
		pin     string
		hash    string
		repoErr error
		wantErr error
	}{
		{name: "match", pin: "482913", hash: string(hash)},
		{name: "mismatch", pin: "482914", hash: string(hash), wantErr: ErrMismatch},
		{name: "malformed pin never matches", pin: "abc", hash: string(hash), wantErr: ErrMismatch},
		{name: "not set", pin: "482913", repoErr: ErrNotSet, wantErr: ErrNotSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("GetHash", mock.Anything, userID).Return(tt.hash, tt.repoErr)
			svc := NewService(repo, MinCost, slog.Default())

			err := svc.Verify(context.Background(), userID, tt.pin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("repository error is not a mismatch", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetHash", mock.Anything, userID).Return("", errors.New("timeout"))
		svc := NewService(repo, MinCost, slog.Default())

		err := svc.Verify(context.Background(), userID, "482913")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrMismatch)
	})
}
