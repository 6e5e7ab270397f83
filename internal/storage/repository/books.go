package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/lumi-library/internal/models"
)

const bookColumns = `id, title, author, description, category, cover_image,
			      sample_content, full_content, rating, created_at`

func scanBook(row interface{ Scan(...any) error }) (*models.Book, error) {
	b := &models.Book{}
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Category,
		&b.CoverImage, &b.SampleContent, &b.FullContent, &b.Rating, &b.CreatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBook вставляет новую книгу каталога и возвращает её ID.
func (s *Storage) CreateBook(ctx context.Context, book models.Book) (int, error) {
	const op = "storage.CreateBook"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO books (title, author, description, category, cover_image,
			      sample_content, full_content)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		book.Title, book.Author, book.Description, book.Category,
		book.CoverImage, book.SampleContent, book.FullContent).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetBook возвращает книгу по её ID.
func (s *Storage) GetBook(ctx context.Context, id int) (*models.Book, error) {
	const op = "storage.GetBook"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	b, err := scanBook(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// ListBooks возвращает книги каталога. Пустая категория или значение "All"
// не фильтрует; search ищет подстроку в названии или авторе без учета регистра.
func (s *Storage) ListBooks(ctx context.Context, category, search string) ([]*models.Book, error) {
	const op = "storage.ListBooks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + bookColumns + `
			  FROM books
			  WHERE ($1 = '' OR $1 = 'All' OR category = $1)
			    AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR author ILIKE '%' || $2 || '%')
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, category, search)
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

// UpdateBook обновляет поля книги по ID и возвращает обновленную запись.
func (s *Storage) UpdateBook(ctx context.Context, id int, book models.Book) (*models.Book, error) {
	const op = "storage.UpdateBook"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE books
			  SET title = $1, author = $2, description = $3, category = $4,
			      cover_image = $5, sample_content = $6, full_content = $7
			  WHERE id = $8
			  RETURNING ` + bookColumns
	b, err := scanBook(s.DB.QueryRowContext(ctx, query,
		book.Title, book.Author, book.Description, book.Category,
		book.CoverImage, book.SampleContent, book.FullContent, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// RemoveBook удаляет книгу вместе с её отзывами и вхождениями в избранное.
func (s *Storage) RemoveBook(ctx context.Context, id int) error {
	const op = "storage.RemoveBook"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM reviews WHERE book_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM wishlist_items WHERE book_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListReviews возвращает отзывы о книге вместе с именами авторов.
func (s *Storage) ListReviews(ctx context.Context, bookID int) ([]*models.Review, error) {
	const op = "storage.ListReviews"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.book_id, r.user_uid, u.name, r.rating, r.comment, r.created_at
			  FROM reviews r
			  JOIN users u ON u.uid = r.user_uid
			  WHERE r.book_id = $1
			  ORDER BY r.created_at`
	rows, err := s.DB.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Review
	for rows.Next() {
		var r models.Review
		if err = rows.Scan(&r.ID, &r.BookID, &r.UserUID, &r.UserName,
			&r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AddReview вставляет отзыв и в той же транзакции пересчитывает среднюю
// оценку книги. Повторный отзыв того же пользователя дает ErrDuplicate.
func (s *Storage) AddReview(ctx context.Context, review models.Review) error {
	const op = "storage.AddReview"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO reviews (book_id, user_uid, rating, comment)
			  VALUES ($1, $2, $3, $4)`,
		review.BookID, review.UserUID, review.Rating, review.Comment)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE books
			  SET rating = (SELECT AVG(rating) FROM reviews WHERE book_id = $1)
			  WHERE id = $1`, review.BookID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
