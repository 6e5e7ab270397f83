// Package update реализует HTTP-обработчик изменения книги каталога.
// Маршрут доступен только администраторам.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lumi-library/internal/http/response"
	"github.com/magabrotheeeer/lumi-library/internal/lib/sl"
	"github.com/magabrotheeeer/lumi-library/internal/models"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

// Request — входные данные для изменения книги
type Request struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	Description   string `json:"description"`
	Category      string `json:"category" validate:"required"`
	CoverImage    string `json:"cover_image"`
	SampleContent string `json:"sample_content"`
	FullContent   string `json:"full_content"`
}

// Service описывает интерфейс бизнес-логики изменения книги.
type Service interface {
	Update(ctx context.Context, id int, book models.Book) (*models.Book, error)
}

// Handler управляет HTTP-запросами на изменение книги.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить книгу
// @Description Обновляет книгу каталога. Только для администраторов.
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID книги"
// @Param request body Request true "Новые данные книги"
// @Success 200 {object} response.Response "Обновленная книга"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 404 {object} response.ErrorResponse "Книга не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /books/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	book := models.Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Category:      req.Category,
		CoverImage:    req.CoverImage,
		SampleContent: req.SampleContent,
		FullContent:   req.FullContent,
	}
	updated, err := h.service.Update(r.Context(), id, book)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("book not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
			return
		}
		log.Error("failed to update book", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update book"))
		return
	}

	log.Info("book updated", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(updated))
}
