// Package adminlist реализует HTTP-обработчик административного списка
// подписок с данными владельцев и фильтрацией.
package adminlist

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

// Service описывает интерфейс административного списка подписок.
type Service interface {
	ListAll(ctx context.Context, filter models.SubscriptionFilter) ([]*models.SubscriptionWithUser, error)
}

// Handler управляет HTTP-запросами на административный список подписок.
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
// @Summary Список подписок
// @Description Возвращает подписки с данными владельцев. Только для администраторов.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Поиск по имени или email владельца"
// @Param plan query string false "Фильтр по плану"
// @Param status query string false "active или expired"
// @Success 200 {object} response.Response "Список подписок"
// @Failure 403 {object} response.ErrorResponse "Требуются права администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.adminlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.SubscriptionFilter{
		Search: r.URL.Query().Get("search"),
		Plan:   r.URL.Query().Get("plan"),
		Status: r.URL.Query().Get("status"),
	}

	subs, err := h.service.ListAll(r.Context(), filter)
	if err != nil {
		if repository.IsUnavailable(err) {
			log.Error("database unavailable", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("database connection error"))
			return
		}
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list subscriptions"))
		return
	}

	log.Info("subscriptions listed", slog.Int("count", len(subs)))
	render.JSON(w, r, response.OKWithData(subs))
}
