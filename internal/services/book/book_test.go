package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lumi-library/internal/models"
	services "github.com/magabrotheeeer/lumi-library/internal/services/book"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

type BookRepoMock struct {
	mock.Mock
}

func (m *BookRepoMock) CreateBook(ctx context.Context, book models.Book) (int, error) {
	args := m.Called(ctx, book)
	return args.Int(0), args.Error(1)
}

func (m *BookRepoMock) GetBook(ctx context.Context, id int) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *BookRepoMock) ListBooks(ctx context.Context, category, search string) ([]*models.Book, error) {
	args := m.Called(ctx, category, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Book), args.Error(1)
}

func (m *BookRepoMock) UpdateBook(ctx context.Context, id int, book models.Book) (*models.Book, error) {
	args := m.Called(ctx, id, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *BookRepoMock) RemoveBook(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BookRepoMock) ListReviews(ctx context.Context, bookID int) ([]*models.Review, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

func (m *BookRepoMock) AddReview(ctx context.Context, review models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// CacheMock реализует интерфейс services.Cache в памяти.
type CacheMock struct {
	data map[string][]byte
	sets int
}

func newCacheMock() *CacheMock {
	return &CacheMock{data: make(map[string][]byte)}
}

func (c *CacheMock) Get(key string, result any) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

func (c *CacheMock) Set(key string, _ any, _ time.Duration) error {
	c.data[key] = []byte("cached")
	c.sets++
	return nil
}

func (c *CacheMock) Invalidate(key string) error {
	delete(c.data, key)
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBookService_Read(t *testing.T) {
	t.Run("cache miss loads from repository and caches", func(t *testing.T) {
		repo := new(BookRepoMock)
		repo.On("GetBook", mock.Anything, 5).
			Return(&models.Book{ID: 5, Title: "Dune"}, nil).Once()
		repo.On("ListReviews", mock.Anything, 5).
			Return([]*models.Review{{ID: 1, BookID: 5, Rating: 5}}, nil).Once()
		cache := newCacheMock()
		svc := services.NewBookService(repo, cache, newTestLogger())

		details, err := svc.Read(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "Dune", details.Title)
		require.Len(t, details.Reviews, 1)
		assert.Equal(t, 1, cache.sets)

		repo.AssertExpectations(t)
	})

	t.Run("book not found", func(t *testing.T) {
		repo := new(BookRepoMock)
		repo.On("GetBook", mock.Anything, 42).
			Return(nil, repository.ErrNotFound).Once()
		svc := services.NewBookService(repo, newCacheMock(), newTestLogger())

		_, err := svc.Read(context.Background(), 42)
		require.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestBookService_AddReview(t *testing.T) {
	t.Run("duplicate review", func(t *testing.T) {
		repo := new(BookRepoMock)
		repo.On("GetBook", mock.Anything, 5).
			Return(&models.Book{ID: 5, Title: "Dune"}, nil).Once()
		repo.On("AddReview", mock.Anything, mock.Anything).
			Return(repository.ErrDuplicate).Once()
		svc := services.NewBookService(repo, newCacheMock(), newTestLogger())

		_, err := svc.AddReview(context.Background(), "uid-1", 5, 4, "great read")
		require.ErrorIs(t, err, services.ErrAlreadyReviewed)

		repo.AssertExpectations(t)
	})

	t.Run("review for missing book", func(t *testing.T) {
		repo := new(BookRepoMock)
		repo.On("GetBook", mock.Anything, 42).
			Return(nil, repository.ErrNotFound).Once()
		svc := services.NewBookService(repo, newCacheMock(), newTestLogger())

		_, err := svc.AddReview(context.Background(), "uid-1", 42, 4, "great read")
		require.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("successful review invalidates cache and returns details", func(t *testing.T) {
		repo := new(BookRepoMock)
		repo.On("GetBook", mock.Anything, 5).
			Return(&models.Book{ID: 5, Title: "Dune", Rating: 4.5}, nil).Twice()
		repo.On("AddReview", mock.Anything, mock.MatchedBy(func(r models.Review) bool {
			return r.BookID == 5 && r.UserUID == "uid-1" && r.Rating == 4
		})).Return(nil).Once()
		repo.On("ListReviews", mock.Anything, 5).
			Return([]*models.Review{{ID: 1, BookID: 5, Rating: 4}}, nil).Once()
		cache := newCacheMock()
		cache.data["book:5"] = []byte("stale")
		svc := services.NewBookService(repo, cache, newTestLogger())

		details, err := svc.AddReview(context.Background(), "uid-1", 5, 4, "great read")
		require.NoError(t, err)
		assert.Equal(t, 4.5, details.Rating)
		require.Len(t, details.Reviews, 1)

		repo.AssertExpectations(t)
	})
}

func TestBookService_Update(t *testing.T) {
	repo := new(BookRepoMock)
	repo.On("UpdateBook", mock.Anything, 5, mock.Anything).
		Return(&models.Book{ID: 5, Title: "Dune Messiah"}, nil).Once()
	cache := newCacheMock()
	cache.data["book:5"] = []byte("stale")
	svc := services.NewBookService(repo, cache, newTestLogger())

	updated, err := svc.Update(context.Background(), 5, models.Book{Title: "Dune Messiah"})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)

	_, ok := cache.data["book:5"]
	assert.False(t, ok, "cache entry should be invalidated")
}
