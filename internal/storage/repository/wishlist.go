package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/lumi-library/internal/models"
)

// AddWishlistItem добавляет книгу в избранное пользователя.
// Повторное добавление молча игнорируется: избранное ведет себя как множество.
func (s *Storage) AddWishlistItem(ctx context.Context, userUID string, bookID int) error {
	const op = "storage.AddWishlistItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO wishlist_items (user_uid, book_id)
			  VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, userUID, bookID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListWishlist возвращает книги из избранного пользователя.
func (s *Storage) ListWishlist(ctx context.Context, userUID string) ([]*models.Book, error) {
	const op = "storage.ListWishlist"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT b.id, b.title, b.author, b.description, b.category, b.cover_image,
			      b.sample_content, b.full_content, b.rating, b.created_at
			  FROM wishlist_items w
			  JOIN books b ON b.id = w.book_id
			  WHERE w.user_uid = $1
			  ORDER BY w.created_at`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveWishlistItem убирает книгу из избранного пользователя.
func (s *Storage) RemoveWishlistItem(ctx context.Context, userUID string, bookID int) error {
	const op = "storage.RemoveWishlistItem"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM wishlist_items WHERE user_uid = $1 AND book_id = $2`
	if _, err := s.DB.ExecContext(ctx, query, userUID, bookID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
