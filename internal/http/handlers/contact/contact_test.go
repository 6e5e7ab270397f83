package contact

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lumi-library/internal/models"
)

// MockPublisher реализует интерфейс contact.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(message models.ContactMessage) error {
	args := m.Called(message)
	return args.Error(0)
}

func TestContactHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockPublisher)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "сообщение ставится в очередь",
			body: `{"name":"alice","email":"alice@example.com","subject":"Hello","message":"I love the library"}`,
			setupMock: func(m *MockPublisher) {
				m.On("Publish", models.ContactMessage{
					Name:    "alice",
					Email:   "alice@example.com",
					Subject: "Hello",
					Message: "I love the library",
				}).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `message sent`,
		},
		{
			name:           "отсутствует тема",
			body:           `{"name":"alice","email":"alice@example.com","message":"no subject"}`,
			setupMock:      func(_ *MockPublisher) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Subject is a required field`,
		},
		{
			name:           "некорректный email",
			body:           `{"name":"alice","email":"not-an-email","subject":"Hi","message":"text"}`,
			setupMock:      func(_ *MockPublisher) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name: "очередь недоступна",
			body: `{"name":"alice","email":"alice@example.com","subject":"Hello","message":"text"}`,
			setupMock: func(m *MockPublisher) {
				m.On("Publish", mock.Anything).Return(errors.New("channel closed"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to send message`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPublisher := new(MockPublisher)
			tt.setupMock(mockPublisher)

			handler := New(logger, mockPublisher)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockPublisher.AssertExpectations(t)
		})
	}
}
