package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/chef-ai/internal/http/middlewarectx"
	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// MockService реализует интерфейс checkout.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateCheckout(ctx context.Context, user *models.User, plan models.Plan) (string, error) {
	args := m.Called(ctx, user, plan)
	return args.String(0), args.Error(1)
}

func TestCheckoutHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	user := &models.User{UUID: "7c0c2f4e-8a7b-4c55-9d4e-2b8f0c1a9e11", Email: "chef@example.com"}

	tests := []struct {
		name           string
		user           *models.User
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "месячный тариф",
			user: user,
			body: `{"plan":"monthly"}`,
			setupMock: func(m *MockService) {
				m.On("CreateCheckout", mock.Anything, user, models.PlanMonthly).
					Return("https://checkout.stripe.com/c/pay/cs_1", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"url":"https://checkout.stripe.com/c/pay/cs_1"}`,
		},
		{
			name:           "некорректный JSON",
			user:           user,
			body:           `{"plan":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name:           "неизвестный тариф",
			user:           user,
			body:           `{"plan":"yearly"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error":"field Plan must be one of: weekly monthly"}`,
		},
		{
			name:           "тариф не указан",
			user:           user,
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error":"field Plan is a required field"}`,
		},
		{
			name:           "пользователь не в контексте",
			body:           `{"plan":"weekly"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"user not authenticated"}`,
		},
		{
			name: "ошибка провайдера",
			user: user,
			body: `{"plan":"weekly"}`,
			setupMock: func(m *MockService) {
				m.On("CreateCheckout", mock.Anything, user, models.PlanWeekly).Return("", errors.New("declined"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to create checkout session"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/functions/v1/create-checkout", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.user != nil {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), tt.user))
			}
			w := httptest.NewRecorder()

			New(logger, mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
