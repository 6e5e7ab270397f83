package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lumi-library/internal/models"
	services "github.com/magabrotheeeer/lumi-library/internal/services/user"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ListUsers(ctx context.Context, search string) ([]*models.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateUserRole(ctx context.Context, userUID, role string) (*models.User, error) {
	args := m.Called(ctx, userUID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) RemoveUser(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

func (m *UserRepoMock) GetBook(ctx context.Context, id int) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *UserRepoMock) AddWishlistItem(ctx context.Context, userUID string, bookID int) error {
	args := m.Called(ctx, userUID, bookID)
	return args.Error(0)
}

func (m *UserRepoMock) ListWishlist(ctx context.Context, userUID string) ([]*models.Book, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Book), args.Error(1)
}

func (m *UserRepoMock) RemoveWishlistItem(ctx context.Context, userUID string, bookID int) error {
	args := m.Called(ctx, userUID, bookID)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserService_AddToWishlist(t *testing.T) {
	t.Run("successful add returns updated list", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetBook", mock.Anything, 5).
			Return(&models.Book{ID: 5}, nil).Once()
		repo.On("AddWishlistItem", mock.Anything, "uid-1", 5).Return(nil).Once()
		repo.On("ListWishlist", mock.Anything, "uid-1").
			Return([]*models.Book{{ID: 5}}, nil).Once()
		svc := services.NewUserService(repo, newTestLogger())

		books, err := svc.AddToWishlist(context.Background(), "uid-1", 5)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, 5, books[0].ID)

		repo.AssertExpectations(t)
	})

	t.Run("missing book is rejected", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetBook", mock.Anything, 42).
			Return(nil, repository.ErrNotFound).Once()
		svc := services.NewUserService(repo, newTestLogger())

		_, err := svc.AddToWishlist(context.Background(), "uid-1", 42)
		require.ErrorIs(t, err, repository.ErrNotFound)

		repo.AssertExpectations(t)
	})
}

func TestUserService_UpdateRole(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("UpdateUserRole", mock.Anything, "uid-1", "admin").
		Return(&models.User{UID: "uid-1", Role: "admin"}, nil).Once()
	svc := services.NewUserService(repo, newTestLogger())

	user, err := svc.UpdateRole(context.Background(), "uid-1", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
}

func TestUserService_Remove(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("RemoveUser", mock.Anything, "uid-1").
		Return(repository.ErrNotFound).Once()
	svc := services.NewUserService(repo, newTestLogger())

	err := svc.Remove(context.Background(), "uid-1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
