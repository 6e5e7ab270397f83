// Package services содержит бизнес-логику работы с пользователями:
// профиль, избранное и административное управление.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/lumi-library/internal/models"
)

// UserRepository определяет методы для работы с пользователями и избранным в хранилище.
type UserRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// ListUsers возвращает пользователей по строке поиска.
	ListUsers(ctx context.Context, search string) ([]*models.User, error)
	// UpdateUserRole изменяет роль пользователя.
	UpdateUserRole(ctx context.Context, userUID, role string) (*models.User, error)
	// RemoveUser удаляет пользователя вместе с подписками и избранным.
	RemoveUser(ctx context.Context, userUID string) error
	// GetBook возвращает книгу по ID, для проверки ссылки из избранного.
	GetBook(ctx context.Context, id int) (*models.Book, error)
	// AddWishlistItem добавляет книгу в избранное.
	AddWishlistItem(ctx context.Context, userUID string, bookID int) error
	// ListWishlist возвращает книги из избранного.
	ListWishlist(ctx context.Context, userUID string) ([]*models.Book, error)
	// RemoveWishlistItem убирает книгу из избранного.
	RemoveWishlistItem(ctx context.Context, userUID string, bookID int) error
}

// UserService реализует бизнес-логику работы с пользователями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Profile возвращает пользователя по UID.
func (s *UserService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	return s.repo.GetUser(ctx, userUID)
}

// AddToWishlist добавляет книгу в избранное и возвращает обновленный список.
// Ссылочная целостность проверяется здесь: книга должна существовать.
func (s *UserService) AddToWishlist(ctx context.Context, userUID string, bookID int) ([]*models.Book, error) {
	if _, err := s.repo.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	if err := s.repo.AddWishlistItem(ctx, userUID, bookID); err != nil {
		return nil, err
	}
	return s.repo.ListWishlist(ctx, userUID)
}

// Wishlist возвращает книги из избранного пользователя.
func (s *UserService) Wishlist(ctx context.Context, userUID string) ([]*models.Book, error) {
	return s.repo.ListWishlist(ctx, userUID)
}

// RemoveFromWishlist убирает книгу из избранного и возвращает обновленный список.
func (s *UserService) RemoveFromWishlist(ctx context.Context, userUID string, bookID int) ([]*models.Book, error) {
	if err := s.repo.RemoveWishlistItem(ctx, userUID, bookID); err != nil {
		return nil, err
	}
	return s.repo.ListWishlist(ctx, userUID)
}

// ListUsers возвращает пользователей для административного списка.
func (s *UserService) ListUsers(ctx context.Context, search string) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, search)
}

// UpdateRole изменяет роль пользователя. Изменение вступает в силу
// немедленно: роль проверяется по хранилищу, а не по выданным токенам.
func (s *UserService) UpdateRole(ctx context.Context, userUID, role string) (*models.User, error) {
	user, err := s.repo.UpdateUserRole(ctx, userUID, role)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated user role", slog.String("uid", userUID), slog.String("role", role))
	return user, nil
}

// Remove удаляет пользователя вместе с его подписками и избранным.
func (s *UserService) Remove(ctx context.Context, userUID string) error {
	if err := s.repo.RemoveUser(ctx, userUID); err != nil {
		return err
	}
	s.log.Info("removed user", slog.String("uid", userUID))
	return nil
}
