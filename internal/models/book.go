package models

import "time"

// Book представляет книгу каталога.
// Rating — денормализованная средняя оценка, пересчитывается при добавлении отзыва.
type Book struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	CoverImage    string    `json:"cover_image"`
	SampleContent string    `json:"sample_content"`
	FullContent   string    `json:"full_content"`
	Rating        float64   `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
}

// Review представляет отзыв пользователя о книге.
// На книгу допускается не более одного отзыва от пользователя.
type Review struct {
	ID        int       `json:"id"`
	BookID    int       `json:"book_id"`
	UserUID   string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// BookDetails объединяет книгу и её отзывы для страницы книги.
type BookDetails struct {
	Book    `json:"book"`
	Reviews []*Review `json:"reviews"`
}
