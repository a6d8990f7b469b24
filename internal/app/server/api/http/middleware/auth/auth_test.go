package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockSession struct {
	mock.Mock
}

func (m *MockSession) Create(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockSession) Validate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type whoamiBody struct {
	UserID string `json:"userId"`
}

type whoamiOutput struct {
	Body whoamiBody
}

func newTestAPI(t *testing.T, sess *MockSession) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t)
	mw := New(sess, slog.Default())

	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Middlewares: huma.Middlewares{mw.Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*whoamiOutput, error) {
		out := &whoamiOutput{}
		out.Body.UserID, _ = GetUserID(ctx)
		return out, nil
	})

	return api
}

func TestMiddleware(t *testing.T) {
	const userID = "1f2e3d4c-5b6a-4978-8877-665544332211"

	tests := []struct {
		name       string
		header     []any
		token      string
		validErr   error
		wantStatus int
	}{
		{
			name:       "valid token",
			header:     []any{"Authorization: Bearer good"},
			token:      "good",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not bearer",
			header:     []any{"Authorization: Basic Zm9vOmJhcg=="},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     []any{"Authorization: Bearer bad"},
			token:      "bad",
			validErr:   errors.New("invalid token"),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := new(MockSession)
			if tt.token != "" {
				id := userID
				if tt.validErr != nil {
					id = ""
				}
				sess.On("Validate", mock.Anything, tt.token).Return(id, tt.validErr)
			}

			resp := newTestAPI(t, sess).Get("/whoami", tt.header...)
			assert.Equal(t, tt.wantStatus, resp.Code)

			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, resp.Body.String())
				return
			}

			var body whoamiBody
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, userID, body.UserID)
			sess.AssertExpectations(t)
		})
	}
}

func TestGetUserID(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	_, ok = GetUserID(WithUserID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := GetUserID(WithUserID(context.Background(), "u1"))
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
}
