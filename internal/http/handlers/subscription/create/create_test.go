package create

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lumi-library/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lumi-library/internal/models"
	services "github.com/magabrotheeeer/lumi-library/internal/services/subscription"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Purchase(ctx context.Context, userUID, plan string, amount float64) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, plan, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешная покупка",
			body:    `{"plan":"basic","amount":9.99}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "uid-1", "basic", 9.99).
					Return(&models.Subscription{
						ID:         1,
						UserUID:    "uid-1",
						Plan:       "basic",
						ExpiryDate: time.Now().AddDate(0, 0, 30),
						IsActive:   true,
						Amount:     9.99,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"plan":"basic"`,
		},
		{
			name:    "сумма не совпадает с ценой плана",
			body:    `{"plan":"premium","amount":9.99}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "uid-1", "premium", 9.99).
					Return(nil, services.ErrAmountMismatch)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `amount does not match plan price`,
		},
		{
			name:           "несуществующий план отклоняется валидацией",
			body:           `{"plan":"golden","amount":9.99}`,
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Plan has an unsupported value`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           `{"plan":"basic","amount":9.99}`,
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/subscriptions", strings.NewReader(tt.body))
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
