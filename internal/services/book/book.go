// Package services содержит бизнес-логику каталога книг: просмотр,
// административное управление и отзывы с кешированием чтений.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/lumi-library/internal/models"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

// ErrAlreadyReviewed возвращается при повторном отзыве пользователя о книге.
var ErrAlreadyReviewed = errors.New("book already reviewed by this user")

// BookRepository определяет методы для работы с каталогом в хранилище.
type BookRepository interface {
	// CreateBook добавляет книгу и возвращает её ID.
	CreateBook(ctx context.Context, book models.Book) (int, error)
	// GetBook возвращает книгу по ID.
	GetBook(ctx context.Context, id int) (*models.Book, error)
	// ListBooks возвращает книги по категории и строке поиска.
	ListBooks(ctx context.Context, category, search string) ([]*models.Book, error)
	// UpdateBook обновляет книгу по ID.
	UpdateBook(ctx context.Context, id int, book models.Book) (*models.Book, error)
	// RemoveBook удаляет книгу вместе с отзывами и избранным.
	RemoveBook(ctx context.Context, id int) error
	// ListReviews возвращает отзывы о книге.
	ListReviews(ctx context.Context, bookID int) ([]*models.Review, error)
	// AddReview добавляет отзыв и пересчитывает среднюю оценку.
	AddReview(ctx context.Context, review models.Review) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// BookService реализует бизнес-логику каталога, включая кеширование страниц книг.
type BookService struct {
	repo  BookRepository
	cache Cache
	log   *slog.Logger
}

// NewBookService создает новый экземпляр BookService.
func NewBookService(repo BookRepository, cache Cache, log *slog.Logger) *BookService {
	return &BookService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает книги каталога по категории и строке поиска.
func (s *BookService) List(ctx context.Context, category, search string) ([]*models.Book, error) {
	return s.repo.ListBooks(ctx, category, search)
}

// Read возвращает книгу с отзывами, используя кеш или репозиторий.
func (s *BookService) Read(ctx context.Context, id int) (*models.BookDetails, error) {
	var result *models.BookDetails
	cacheKey := fmt.Sprintf("book:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}

	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.repo.ListReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	result = &models.BookDetails{Book: *book, Reviews: reviews}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache book", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Create добавляет книгу в каталог и возвращает её ID.
func (s *BookService) Create(ctx context.Context, book models.Book) (int, error) {
	id, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new book", slog.Int("id", id), slog.String("title", book.Title))
	return id, nil
}

// Update обновляет книгу и инвалидирует кеш.
func (s *BookService) Update(ctx context.Context, id int, book models.Book) (*models.Book, error) {
	updated, err := s.repo.UpdateBook(ctx, id, book)
	if err != nil {
		return nil, err
	}
	cacheKey := fmt.Sprintf("book:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return updated, nil
}

// Remove удаляет книгу и инвалидирует кеш.
func (s *BookService) Remove(ctx context.Context, id int) error {
	cacheKey := fmt.Sprintf("book:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.RemoveBook(ctx, id)
}

// AddReview добавляет отзыв о книге. Допускается один отзыв от пользователя
// на книгу; средняя оценка пересчитывается в хранилище.
func (s *BookService) AddReview(ctx context.Context, userUID string, bookID, rating int, comment string) (*models.BookDetails, error) {
	if _, err := s.repo.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	review := models.Review{
		BookID:  bookID,
		UserUID: userUID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.repo.AddReview(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	cacheKey := fmt.Sprintf("book:%d", bookID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.Read(ctx, bookID)
}
