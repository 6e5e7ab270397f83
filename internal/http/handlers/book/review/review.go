// Package review реализует HTTP-обработчик добавления отзыва о книге.
//
// На книгу допускается один отзыв от пользователя, средняя оценка
// пересчитывается при добавлении. В ответ возвращается обновленная
// страница книги.
package review

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

	"github.com/magabrotheeeer/lumi-library/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lumi-library/internal/http/response"
	"github.com/magabrotheeeer/lumi-library/internal/lib/sl"
	"github.com/magabrotheeeer/lumi-library/internal/models"
	services "github.com/magabrotheeeer/lumi-library/internal/services/book"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

// Request — входные данные отзыва
type Request struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required"`
}

// Service описывает интерфейс бизнес-логики отзывов.
type Service interface {
	AddReview(ctx context.Context, userUID string, bookID, rating int, comment string) (*models.BookDetails, error)
}

// Handler управляет HTTP-запросами на добавление отзыва.
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
// @Summary Оставить отзыв
// @Description Добавляет отзыв о книге. Один отзыв от пользователя на книгу.
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID книги"
// @Param request body Request true "Оценка и комментарий"
// @Success 201 {object} response.Response "Обновленная страница книги"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ID или повторный отзыв"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Книга не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /books/{id}/reviews [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.review"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	bookID, err := strconv.Atoi(idStr)
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

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	details, err := h.service.AddReview(r.Context(), userUID, bookID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Warn("book not found", slog.Int("id", bookID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
		case errors.Is(err, services.ErrAlreadyReviewed):
			log.Warn("book already reviewed", slog.Int("id", bookID), slog.String("uid", userUID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("you have already reviewed this book"))
		default:
			log.Error("failed to add review", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add review"))
		}
		return
	}

	log.Info("review added", slog.Int("book_id", bookID), slog.String("uid", userUID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(details))
}
