package middlewarectx_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/chef-ai/internal/http/middlewarectx"
	"github.com/magabrotheeeer/chef-ai/internal/models"
)

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{UUID: "7c0c2f4e-8a7b-4c55-9d4e-2b8f0c1a9e11", Email: "chef@example.com"}

	tests := []struct {
		name       string
		authHeader string
		mockUser   *models.User
		mockErr    error
		callMock   bool
		wantStatus int
		wantErrMsg string
		wantCalled bool
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusInternalServerError,
			wantErrMsg: middlewarectx.MsgMissingHeader,
		},
		{
			name:       "not a bearer header",
			authHeader: "Basic abc",
			wantStatus: http.StatusInternalServerError,
			wantErrMsg: middlewarectx.MsgInvalidHeader,
		},
		{
			name:       "empty bearer token",
			authHeader: "Bearer  ",
			wantStatus: http.StatusInternalServerError,
			wantErrMsg: middlewarectx.MsgInvalidHeader,
		},
		{
			name:       "provider rejects token",
			authHeader: "Bearer bad",
			mockErr:    models.ErrAuthentication,
			callMock:   true,
			wantStatus: http.StatusInternalServerError,
			wantErrMsg: middlewarectx.MsgNotAuthenticated,
		},
		{
			name:       "no user resolved",
			authHeader: "Bearer orphan",
			callMock:   true,
			wantStatus: http.StatusInternalServerError,
			wantErrMsg: middlewarectx.MsgNotAuthenticated,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good",
			mockUser:   user,
			callMock:   true,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(ProviderMock)
			if tt.callMock {
				token := tt.authHeader[len("Bearer "):]
				provider.On("UserFromToken", mock.Anything, token).Return(tt.mockUser, tt.mockErr)
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, ok := middlewarectx.UserFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, user, got)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/functions/v1/check-usage", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			middlewarectx.AuthMiddleware(provider, newNoopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantErrMsg != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, tt.wantErrMsg, body["error"])
			}
			provider.AssertExpectations(t)
		})
	}
}

func TestUserFromContext_Missing(t *testing.T) {
	_, ok := middlewarectx.UserFromContext(context.Background())
	assert.False(t, ok)

	ctx := middlewarectx.WithUser(context.Background(), nil)
	_, ok = middlewarectx.UserFromContext(ctx)
	assert.False(t, ok)
}
