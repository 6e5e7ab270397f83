// Package add реализует HTTP-обработчик добавления книги в избранное.
// Повторное добавление той же книги не является ошибкой.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lumi-library/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lumi-library/internal/http/response"
	"github.com/magabrotheeeer/lumi-library/internal/lib/sl"
	"github.com/magabrotheeeer/lumi-library/internal/models"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

// Request — входные данные для добавления в избранное
type Request struct {
	BookID int `json:"book_id" validate:"required,gt=0"`
}

// Service описывает интерфейс бизнес-логики избранного.
type Service interface {
	AddToWishlist(ctx context.Context, userUID string, bookID int) ([]*models.Book, error)
}

// Handler управляет HTTP-запросами на добавление в избранное.
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
// @Summary Добавить книгу в избранное
// @Description Добавляет книгу в избранное и возвращает обновленный список.
// @Tags Wishlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "ID книги"
// @Success 200 {object} response.Response "Обновленное избранное"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Книга не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/wishlist [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wishlist.add"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	books, err := h.service.AddToWishlist(r.Context(), userUID, req.BookID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("book not found", slog.Int("book_id", req.BookID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
			return
		}
		log.Error("failed to add book to wishlist", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to add book to wishlist"))
		return
	}

	log.Info("book added to wishlist", slog.Int("book_id", req.BookID), slog.String("uid", userUID))
	render.JSON(w, r, response.OKWithData(books))
}
