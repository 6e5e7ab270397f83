// Package list реализует HTTP-обработчик списка книг каталога
// с фильтрацией по категории и поисковой строке.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lumi-library/internal/http/response"
	"github.com/magabrotheeeer/lumi-library/internal/lib/sl"
	"github.com/magabrotheeeer/lumi-library/internal/models"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

// Service описывает интерфейс чтения каталога.
type Service interface {
	List(ctx context.Context, category, search string) ([]*models.Book, error)
}

// Handler управляет HTTP-запросами на список книг.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список книг
// @Description Возвращает книги каталога. Поддерживает фильтры category и search.
// @Tags Books
// @Produce json
// @Param category query string false "Категория или All"
// @Param search query string false "Поиск по названию или автору"
// @Success 200 {object} response.Response "Список книг"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /books [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	books, err := h.service.List(r.Context(), category, search)
	if err != nil {
		if repository.IsUnavailable(err) {
			log.Error("database unavailable", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("database connection error"))
			return
		}
		log.Error("failed to list books", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list books"))
		return
	}

	log.Info("books listed", slog.Int("count", len(books)))
	render.JSON(w, r, response.OKWithData(books))
}
