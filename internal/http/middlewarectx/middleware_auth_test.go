package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lumi-library/internal/lib/jwt"
	"github.com/magabrotheeeer/lumi-library/internal/models"
)

type TokenValidatorMock struct {
	mock.Mock
}

func (m *TokenValidatorMock) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

type UserProviderMock struct {
	mock.Mock
}

func (m *UserProviderMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*TokenValidatorMock)
		expectedStatus int
		wantNextCalled bool
	}{
		{
			name:       "валидный токен кладет uid в контекст",
			authHeader: "Bearer good-token",
			setupMock: func(m *TokenValidatorMock) {
				m.On("ValidateToken", mock.Anything, "good-token").
					Return(&jwt.CustomClaims{UserUID: "uid-1", Email: "alice@example.com"}, nil)
			},
			expectedStatus: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "нет заголовка Authorization",
			authHeader:     "",
			setupMock:      func(_ *TokenValidatorMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "заголовок без префикса Bearer",
			authHeader:     "Token abc",
			setupMock:      func(_ *TokenValidatorMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "невалидный токен",
			authHeader: "Bearer bad-token",
			setupMock: func(m *TokenValidatorMock) {
				m.On("ValidateToken", mock.Anything, "bad-token").
					Return(nil, errors.New("token expired"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(TokenValidatorMock)
			tt.setupMock(validator)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				uid, _ := r.Context().Value(UserUID).(string)
				assert.Equal(t, "uid-1", uid)
				w.WriteHeader(http.StatusOK)
			})

			handler := JWTMiddleware(validator, testLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)

			validator.AssertExpectations(t)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name           string
		ctxUID         string
		setupMock      func(*UserProviderMock)
		expectedStatus int
		wantNextCalled bool
	}{
		{
			name:   "администратор проходит",
			ctxUID: "uid-admin",
			setupMock: func(m *UserProviderMock) {
				m.On("GetUser", mock.Anything, "uid-admin").
					Return(&models.User{UID: "uid-admin", Role: "admin"}, nil)
			},
			expectedStatus: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:   "обычный пользователь получает 403",
			ctxUID: "uid-user",
			setupMock: func(m *UserProviderMock) {
				m.On("GetUser", mock.Anything, "uid-user").
					Return(&models.User{UID: "uid-user", Role: "user"}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "нет uid в контексте",
			ctxUID:         "",
			setupMock:      func(_ *UserProviderMock) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "роль перечитывается из хранилища на каждом запросе",
			ctxUID: "uid-demoted",
			setupMock: func(m *UserProviderMock) {
				// Токен мог быть выдан администратору, но хранилище уже
				// знает о понижении роли.
				m.On("GetUser", mock.Anything, "uid-demoted").
					Return(&models.User{UID: "uid-demoted", Role: "user"}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserProviderMock)
			tt.setupMock(users)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := RequireAdmin(users, testLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			if tt.ctxUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), UserUID, tt.ctxUID))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)

			users.AssertExpectations(t)
		})
	}
}
