// Package remove реализует HTTP-обработчик удаления книги из избранного.
// Удаление отсутствующей записи не является ошибкой.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/lumi-library/internal/http/middlewarectx"
	"github.com/magabrotheeeer/lumi-library/internal/http/response"
	"github.com/magabrotheeeer/lumi-library/internal/lib/sl"
	"github.com/magabrotheeeer/lumi-library/internal/models"
)

// Service описывает интерфейс бизнес-логики избранного.
type Service interface {
	RemoveFromWishlist(ctx context.Context, userUID string, bookID int) ([]*models.Book, error)
}

// Handler управляет HTTP-запросами на удаление из избранного.
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
// @Summary Убрать книгу из избранного
// @Description Убирает книгу из избранного и возвращает обновленный список.
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Param bookId path int true "ID книги"
// @Success 200 {object} response.Response "Обновленное избранное"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/wishlist/{bookId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wishlist.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "bookId")
	bookID, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	books, err := h.service.RemoveFromWishlist(r.Context(), userUID, bookID)
	if err != nil {
		log.Error("failed to remove book from wishlist", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove book from wishlist"))
		return
	}

	log.Info("book removed from wishlist", slog.Int("book_id", bookID), slog.String("uid", userUID))
	render.JSON(w, r, response.OKWithData(books))
}
