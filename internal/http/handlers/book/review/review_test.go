package review

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/lumi-library/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lumi-library/internal/models"
	services "github.com/magabrotheeeer/lumi-library/internal/services/book"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

// MockService реализует интерфейс review.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AddReview(ctx context.Context, userUID string, bookID, rating int, comment string) (*models.BookDetails, error) {
	args := m.Called(ctx, userUID, bookID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookDetails), args.Error(1)
}

func TestReviewHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		bookID         string
		body           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "отзыв добавлен",
			bookID:  "7",
			body:    `{"rating":5,"comment":"great book"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("AddReview", mock.Anything, "uid-1", 7, 5, "great book").
					Return(&models.BookDetails{
						Book: models.Book{ID: 7, Title: "Dune", Rating: 5},
						Reviews: []*models.Review{
							{BookID: 7, UserUID: "uid-1", Rating: 5, Comment: "great book"},
						},
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"rating":5`,
		},
		{
			name:    "повторный отзыв",
			bookID:  "7",
			body:    `{"rating":3,"comment":"again"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("AddReview", mock.Anything, "uid-1", 7, 3, "again").
					Return(nil, services.ErrAlreadyReviewed)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `you have already reviewed this book`,
		},
		{
			name:    "книга не найдена",
			bookID:  "99",
			body:    `{"rating":4,"comment":"missing"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("AddReview", mock.Anything, "uid-1", 99, 4, "missing").
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `book not found`,
		},
		{
			name:           "оценка вне диапазона",
			bookID:         "7",
			body:           `{"rating":9,"comment":"too good"}`,
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Rating is out of range`,
		},
		{
			name:           "нет пользователя в контексте",
			bookID:         "7",
			body:           `{"rating":4,"comment":"anon"}`,
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

			req := httptest.NewRequest(http.MethodPost, "/api/books/"+tt.bookID+"/reviews", strings.NewReader(tt.body))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.bookID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
